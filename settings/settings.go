package settings

import (
	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/providers"
)

// System settings.
type settingsProvider struct {
	logger       common.ILoggerProvider
	pluginLogger common.ILoggerProvider
	secrets      common.ISecretProvider
	cron         providers.ICronProvider
	validator    providers.IValidatorProvider
	fanOut       providers.IInternalFanOutProvider

	mSettings   *providers.MasterSettings
	locksConfig []*providers.RawDevice
}

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// PluginLogger returns logger for device providers.
func (s *settingsProvider) PluginLogger() common.ILoggerProvider {
	return s.pluginLogger
}

// Secrets returns secrets store provider.
func (s *settingsProvider) Secrets() common.ISecretProvider {
	return s.secrets
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// FanOut returns fan out channel.
func (s *settingsProvider) FanOut() providers.IInternalFanOutProvider {
	return s.fanOut
}

// MasterSettings returns server settings.
func (s *settingsProvider) MasterSettings() *providers.MasterSettings {
	return s.mSettings
}

// LocksConfig returns raw lock devices configs.
func (s *settingsProvider) LocksConfig() []*providers.RawDevice {
	return s.locksConfig
}
