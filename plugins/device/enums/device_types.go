// Package enums contains various enumerations and rules for device plugins.
package enums

import "fmt"

// DeviceType describes enum with known device types.
type DeviceType int

const (
	// DevUnknown describes unknown device type.
	DevUnknown DeviceType = iota
	// DevLock describes smart-lock device type.
	DevLock
)

var deviceTypeNames = map[DeviceType]string{
	DevUnknown: "unknown",
	DevLock:    "lock",
}

// String returns device type name.
func (i DeviceType) String() string {
	name, ok := deviceTypeNames[i]
	if !ok {
		return "unknown"
	}

	return name
}

// DeviceTypeString transforms string representation into a device type.
func DeviceTypeString(s string) (DeviceType, error) {
	for k, v := range deviceTypeNames {
		if v == s {
			return k, nil
		}
	}

	return DevUnknown, fmt.Errorf("%s does not belong to DeviceType values", s)
}

// MarshalJSON implements the json.Marshaler interface for DeviceType.
func (i DeviceType) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, i.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for DeviceType.
func (i *DeviceType) UnmarshalJSON(data []byte) error {
	l := len(data)
	if l < 2 {
		return fmt.Errorf("DeviceType should be a string")
	}

	t, err := DeviceTypeString(string(data[1 : l-1]))
	if err != nil {
		return err
	}

	*i = t
	return nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for DeviceType.
func (i *DeviceType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	t, err := DeviceTypeString(s)
	if err != nil {
		return err
	}

	*i = t
	return nil
}
