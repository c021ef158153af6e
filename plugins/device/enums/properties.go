package enums

import "fmt"

// Property describes enum with known device properties.
type Property int

const (
	// PropOn describes on/off device property. For a lock "on" means locked.
	PropOn Property = iota
	// PropAvailable describes device availability property.
	PropAvailable
	// PropBatteryLevel describes battery level device property.
	PropBatteryLevel
	// PropAlias describes vendor-side device alias property.
	PropAlias
	// PropModel describes model name device property.
	PropModel
	// PropFirmwareVersion describes firmware version device property.
	PropFirmwareVersion
	// PropHardwareVersion describes hardware version device property.
	PropHardwareVersion
	// PropAutoLockTime describes lock auto-lock timeout property.
	PropAutoLockTime
	// PropPassageMode describes lock passage mode property.
	PropPassageMode
	// PropPassageModeAutoUnlock describes passage mode auto-unlock property.
	PropPassageModeAutoUnlock
	// PropSoundVolume describes lock sound volume property.
	PropSoundVolume
	// PropTamperAlert describes lock tamper alert property.
	PropTamperAlert
	// PropLockID describes vendor lock ID property.
	PropLockID
	// PropLastUser describes last access user property.
	PropLastUser
	// PropLastEntryTime describes last entry time property.
	PropLastEntryTime
)

var propertyNames = map[Property]string{
	PropOn:                    "on",
	PropAvailable:             "available",
	PropBatteryLevel:          "battery_level",
	PropAlias:                 "alias",
	PropModel:                 "model",
	PropFirmwareVersion:       "firmware_version",
	PropHardwareVersion:       "hardware_version",
	PropAutoLockTime:          "auto_lock_time",
	PropPassageMode:           "passage_mode",
	PropPassageModeAutoUnlock: "passage_mode_auto_unlock",
	PropSoundVolume:           "sound_volume",
	PropTamperAlert:           "tamper_alert",
	PropLockID:                "lock_id",
	PropLastUser:              "last_user",
	PropLastEntryTime:         "last_entry_time",
}

// AllowedProperties contains set of all possible allowed properties per device type.
var AllowedProperties = map[DeviceType][]Property{
	DevLock: {PropOn, PropAvailable, PropBatteryLevel, PropAlias, PropModel,
		PropFirmwareVersion, PropHardwareVersion, PropAutoLockTime,
		PropPassageMode, PropPassageModeAutoUnlock, PropSoundVolume,
		PropTamperAlert, PropLockID, PropLastUser, PropLastEntryTime},
}

// String returns property name.
func (i Property) String() string {
	return propertyNames[i]
}

// PropertyString transforms string representation into a property.
func PropertyString(s string) (Property, error) {
	for k, v := range propertyNames {
		if v == s {
			return k, nil
		}
	}

	return PropOn, fmt.Errorf("%s does not belong to Property values", s)
}

// MarshalJSON implements the json.Marshaler interface for Property.
func (i Property) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, i.String())), nil
}

// MarshalText implements the encoding.TextMarshaler interface for Property.
// Required for json-serialization of state maps keyed by a property.
func (i Property) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface for Property.
func (i *Property) UnmarshalText(text []byte) error {
	t, err := PropertyString(string(text))
	if err != nil {
		return err
	}

	*i = t
	return nil
}

// SliceContainsProperty checks whether slice contains certain property.
func SliceContainsProperty(s []Property, e Property) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// IsPropertyAllowed checks whether property is allowed for this device type.
func (i Property) IsPropertyAllowed(deviceType DeviceType) bool {
	slice, ok := AllowedProperties[deviceType]
	if !ok {
		return false
	}

	return SliceContainsProperty(slice, i)
}
