package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type validatorLogger struct {
	errors int
}

func (l *validatorLogger) Debug(string, ...string)        {}
func (l *validatorLogger) Info(string, ...string)         {}
func (l *validatorLogger) Warn(string, ...string)         { l.errors++ }
func (l *validatorLogger) Error(string, error, ...string) { l.errors++ }
func (l *validatorLogger) Fatal(string, error, ...string) { l.errors++ }
func (l *validatorLogger) Flush()                         {}

type percentConfig struct {
	Battery uint8 `validate:"percent"`
}

type portConfig struct {
	Port int `validate:"port" default:"8080"`
}

type requiredConfig struct {
	Name string `validate:"required"`
}

// Tests percent validation.
func TestPercent(t *testing.T) {
	v := NewValidator(&validatorLogger{})

	assert.True(t, v.Validate(&percentConfig{Battery: 100}), "valid")
	assert.False(t, v.Validate(&percentConfig{Battery: 101}), "overflow")
}

// Tests port validation along with defaults.
func TestPort(t *testing.T) {
	v := NewValidator(&validatorLogger{})

	cfg := &portConfig{}
	assert.True(t, v.Validate(cfg), "default")
	assert.Equal(t, 8080, cfg.Port, "default value")

	assert.False(t, v.Validate(&portConfig{Port: 70000}), "out of range")
	assert.True(t, v.Validate(&portConfig{Port: 443}), "valid")
}

// Tests that validation errors are logged.
func TestValidationLogs(t *testing.T) {
	l := &validatorLogger{}
	v := NewValidator(l)

	assert.False(t, v.Validate(&requiredConfig{}), "required")
	assert.Equal(t, 1, l.errors, "logged")
}
