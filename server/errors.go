package server

import "fmt"

// ErrDeviceNotFound defines an unknown device error.
type ErrDeviceNotFound struct {
	ID string
}

// Error formats output.
func (e *ErrDeviceNotFound) Error() string {
	return fmt.Sprintf("device %s is not found", e.ID)
}

// ErrUnknownCommand defines an unknown command error.
type ErrUnknownCommand struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownCommand) Error() string {
	return fmt.Sprintf("unknown command %s", e.Name)
}
