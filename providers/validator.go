package providers

import "go-home.io/x/ttlock/plugins/common"

// IValidatorProvider defines config validator logic.
type IValidatorProvider interface {
	SetLogger(logger common.ILoggerProvider)
	Validate(interface{}) bool
}
