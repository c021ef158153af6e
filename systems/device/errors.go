package device

// ErrUnknownDeviceType defines an unknown device type error.
type ErrUnknownDeviceType struct {
}

// Error formats output.
func (e *ErrUnknownDeviceType) Error() string {
	return "unknown device type"
}

// ErrNoDataFromDevice defines an empty response from device error.
type ErrNoDataFromDevice struct {
}

// Error formats output.
func (*ErrNoDataFromDevice) Error() string {
	return "device didn't return any data"
}

// ErrBadDeviceConfig defines a device config validation error.
type ErrBadDeviceConfig struct {
}

// Error formats output.
func (*ErrBadDeviceConfig) Error() string {
	return "device config validation failed"
}
