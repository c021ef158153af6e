package enums

import "fmt"

// Command describes enum with known device commands.
type Command int

const (
	// CmdOn describes turning on command. For a lock this means "lock".
	CmdOn Command = iota
	// CmdOff describes turning off command. For a lock this means "unlock".
	CmdOff
	// CmdToggle describes toggling on-off status command.
	CmdToggle
)

var commandNames = map[Command]string{
	CmdOn:     "on",
	CmdOff:    "off",
	CmdToggle: "toggle",
}

var commandMethods = map[Command]string{
	CmdOn:     "On",
	CmdOff:    "Off",
	CmdToggle: "Toggle",
}

// AllowedCommands contains set of all possible allowed commands per device type.
var AllowedCommands = map[DeviceType][]Command{
	DevLock: {CmdToggle, CmdOn, CmdOff},
}

// String returns command name.
func (i Command) String() string {
	return commandNames[i]
}

// CommandString transforms string representation into a command.
func CommandString(s string) (Command, error) {
	for k, v := range commandNames {
		if v == s {
			return k, nil
		}
	}

	return CmdOn, fmt.Errorf("%s does not belong to Command values", s)
}

// GetCommandMethodName returns plugin interface method name for the command.
func (i Command) GetCommandMethodName() string {
	return commandMethods[i]
}

// SliceContainsCommand checks whether slice contains certain command.
func SliceContainsCommand(s []Command, e Command) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// IsCommandAllowed checks whether command is allowed for this device type.
func (i Command) IsCommandAllowed(deviceType DeviceType) bool {
	slice, ok := AllowedCommands[deviceType]
	if !ok {
		return false
	}

	return SliceContainsCommand(slice, i)
}
