// Package providers contains interfaces for internal system providers.
package providers

import (
	"go-home.io/x/ttlock/plugins/common"
)

// ISettingsProvider defines interface used by internal systems
// for accessing parsed configuration.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	PluginLogger() common.ILoggerProvider
	Secrets() common.ISecretProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	FanOut() IInternalFanOutProvider
	MasterSettings() *MasterSettings
	LocksConfig() []*RawDevice
}

// MasterSettings has server-level settings.
type MasterSettings struct {
	Port         int `yaml:"port" default:"8080" validate:"port"`
	DelayedStart int `yaml:"delayedStart" default:"0"`
	UpdatePeriod int `yaml:"updatePeriod" default:"30"`
}

// RawDevice has a single un-parsed device config.
type RawDevice struct {
	Name      string
	RawConfig []byte
}
