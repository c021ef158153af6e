package utils

import (
	"sync"

	"github.com/creasty/defaults"
	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/providers"
	"gopkg.in/go-playground/validator.v9"
)

// Custom validation rules used in config structs.
var customRules = map[string]validator.Func{
	// Battery and similar 0-100 values.
	"percent": func(fl validator.FieldLevel) bool {
		return fl.Field().Uint() <= 100
	},
	// TCP port range.
	"port": func(fl validator.FieldLevel) bool {
		val := fl.Field().Int()
		return val > 0 && val <= 65535
	},
}

// Validator implementation.
type validatorProvider struct {
	sync.Mutex
	validator *validator.Validate
	logger    common.ILoggerProvider
}

// NewValidator constructs a new validator.
func NewValidator(logger common.ILoggerProvider) providers.IValidatorProvider {
	v := validator.New()
	for name, rule := range customRules {
		if err := v.RegisterValidation(name, rule); err != nil {
			logger.Error("Failed to register validator type", err, "type", name)
		}
	}

	return &validatorProvider{
		validator: v,
		logger:    logger,
	}
}

// SetLogger updates the logger.
// Since logger is loaded after first init, we need to re-assign it.
func (v *validatorProvider) SetLogger(logger common.ILoggerProvider) {
	v.logger = logger
}

// Validate sets struct defaults and performs validation of a config object.
func (v *validatorProvider) Validate(object interface{}) bool {
	v.Lock()
	defer v.Unlock()

	err := defaults.Set(object)
	if err != nil {
		v.logger.Error("Failed to set default field values", err)
		return false
	}

	err = v.validator.Struct(object)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			v.logger.Warn("Validation error", common.LogFieldToken, e.Field())
		}

		return false
	}

	return true
}
