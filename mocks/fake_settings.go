//+build !release

package mocks

import (
	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/providers"
	"go-home.io/x/ttlock/systems/fanout"
	"go-home.io/x/ttlock/utils"
)

// IFakeSettings extends settings provider with test helpers.
type IFakeSettings interface {
	providers.ISettingsProvider
	InvokeCron()
}

// Fake settings provider
type fakeSettings struct {
	logger    common.ILoggerProvider
	secrets   common.ISecretProvider
	cron      *fakeCron
	validator providers.IValidatorProvider
	fanOut    providers.IInternalFanOutProvider

	mSettings *providers.MasterSettings
	locks     []*providers.RawDevice
}

// Returns fake system logger.
func (f *fakeSettings) SystemLogger() common.ILoggerProvider {
	return f.logger
}

// Returns fake plugin logger.
func (f *fakeSettings) PluginLogger() common.ILoggerProvider {
	return f.logger
}

// Returns fake secrets store.
func (f *fakeSettings) Secrets() common.ISecretProvider {
	return f.secrets
}

// Returns fake cron.
func (f *fakeSettings) Cron() providers.ICronProvider {
	return f.cron
}

// Returns real validator.
func (f *fakeSettings) Validator() providers.IValidatorProvider {
	return f.validator
}

// Returns real fan out provider.
func (f *fakeSettings) FanOut() providers.IInternalFanOutProvider {
	return f.fanOut
}

// Returns fake master settings.
func (f *fakeSettings) MasterSettings() *providers.MasterSettings {
	return f.mSettings
}

// Returns fake locks config.
func (f *fakeSettings) LocksConfig() []*providers.RawDevice {
	return f.locks
}

// InvokeCron triggers saved cron job.
func (f *fakeSettings) InvokeCron() {
	f.cron.Invoke()
}

// FakeNewSettings creates a new fake settings provider.
func FakeNewSettings(loggerCallback func(string), locks []*providers.RawDevice) IFakeSettings {
	logger := FakeNewLogger(loggerCallback)
	return &fakeSettings{
		logger:    logger,
		secrets:   FakeNewSecretStore(nil),
		cron:      FakeNewCron(),
		validator: utils.NewValidator(logger),
		fanOut:    fanout.NewFanOut(),
		mSettings: &providers.MasterSettings{Port: 8080, UpdatePeriod: 30},
		locks:     locks,
	}
}
