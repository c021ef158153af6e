// Package ttlock implements a lock device backed by TTLock cloud API.
package ttlock

import (
	"sync"
	"time"

	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/plugins/device"
	"go-home.io/x/ttlock/plugins/device/enums"
)

// Display format for the last entry time attribute.
const entryTimeFormat = "Mon, 02 Jan 2006 15:04"

// TTLock device implementation.
// A single mutex guards both the cached device state and the token
// owned by the cloud client, commands and updates may race otherwise.
type TTLock struct {
	sync.Mutex

	Settings *Settings

	logger common.ILoggerProvider
	client *cloudClient
	state  *device.LockState
}

// Init performs initial token request.
// Vendor auth outage at startup is not fatal, the device stays up and
// the token is re-requested on the first expired call.
func (t *TTLock) Init(data *device.InitDataDevice) error {
	t.logger = data.Logger
	t.client = newCloudClient(t.Settings, data.Logger)
	t.state = &device.LockState{
		On:                    true,
		Available:             false,
		LockID:                t.Settings.LockID,
		AutoLockTime:          -1,
		PassageMode:           -1,
		PassageModeAutoUnlock: -1,
		SoundVolume:           -1,
		TamperAlert:           -1,
	}

	err := t.client.authenticate()
	if err != nil {
		t.logger.Error("Initial token request failed", err,
			common.LogLockIDToken, t.Settings.LockID)
	}

	return nil
}

// Unload stops the device. Nothing to do here, the cloud client is stateless
// beyond the token blob.
func (t *TTLock) Unload() {
}

// GetName returns the device display name.
func (t *TTLock) GetName() string {
	return t.Settings.Name
}

// GetSpec returns the device spec.
func (t *TTLock) GetSpec() *device.Spec {
	return &device.Spec{
		UpdatePeriod:      30 * time.Second,
		SupportedCommands: []enums.Command{enums.CmdOn, enums.CmdOff, enums.CmdToggle},
		SupportedProperties: []enums.Property{enums.PropOn, enums.PropAvailable,
			enums.PropBatteryLevel, enums.PropAlias, enums.PropModel,
			enums.PropFirmwareVersion, enums.PropHardwareVersion,
			enums.PropAutoLockTime, enums.PropPassageMode,
			enums.PropPassageModeAutoUnlock, enums.PropSoundVolume,
			enums.PropTamperAlert, enums.PropLockID, enums.PropLastUser,
			enums.PropLastEntryTime},
	}
}

// Load performs the first state poll.
func (t *TTLock) Load() (*device.LockState, error) {
	return t.Update()
}

// Update polls the vendor API and re-builds the cached device state.
func (t *TTLock) Update() (*device.LockState, error) {
	t.Lock()
	defer t.Unlock()

	t.refresh()
	return t.snapshot(), nil
}

// On locks the device.
// Vendor rejection is logged and swallowed, commands are fire-and-forget
// from the platform's perspective.
func (t *TTLock) On() error {
	t.Lock()
	defer t.Unlock()

	err := t.client.sendCommand(cmdLock)
	if err != nil {
		t.logger.Error("Lock command rejected by vendor", err,
			common.LogLockIDToken, t.Settings.LockID)
		return nil
	}

	t.assumeCommandSucceeded(true)
	return nil
}

// Off unlocks the device.
func (t *TTLock) Off() error {
	t.Lock()
	defer t.Unlock()

	err := t.client.sendCommand(cmdUnlock)
	if err != nil {
		t.logger.Error("Unlock command rejected by vendor", err,
			common.LogLockIDToken, t.Settings.LockID)
		return nil
	}

	t.assumeCommandSucceeded(false)
	return nil
}

// Toggle inverts the locked state.
func (t *TTLock) Toggle() error {
	t.Lock()
	locked := t.state.On
	t.Unlock()

	if locked {
		return t.Off()
	}

	return t.On()
}

// assumeCommandSucceeded applies the optimistic local update after an
// HTTP 200 on lock/unlock. The vendor does not confirm the final state,
// swap this for a confirm-then-update strategy if that ever changes.
func (t *TTLock) assumeCommandSucceeded(locked bool) {
	t.state.On = locked
}

// Re-builds the cached state from detail, open state and access records
// endpoints. Each failed sub-call leaves previously cached values intact
// and skips everything after it only when the detail call fails.
func (t *TTLock) refresh() {
	t.client.ensureToken()

	detail, err := t.client.fetchDetail()
	if err != nil {
		t.logger.Error("Failed to fetch lock detail", err,
			common.LogLockIDToken, t.Settings.LockID)
		return
	}

	t.state.Available = true
	// Locked until queryOpenState proves otherwise.
	t.state.On = true
	t.state.Alias = detail.LockAlias
	t.state.AutoLockTime = detail.AutoLockTime
	t.state.BatteryLevel = uint8(detail.ElectricQuantity)
	t.state.FirmwareVersion = detail.FirmwareRevision
	t.state.HardwareVersion = detail.HardwareRevision
	t.state.Model = detail.ModelNum
	t.state.PassageMode = detail.PassageMode
	t.state.PassageModeAutoUnlock = detail.PassageModeAutoUnlock
	t.state.SoundVolume = detail.SoundVolume
	t.state.TamperAlert = detail.TamperAlert

	open, err := t.client.fetchOpenState()
	if err != nil {
		t.logger.Warn("Failed to fetch lock open state",
			common.LogLockIDToken, t.Settings.LockID)
	} else if open.State == openStateOpen {
		t.state.On = false
	}

	record, err := t.client.fetchLastRecord()
	if err != nil {
		t.logger.Warn("Failed to fetch lock access records",
			common.LogLockIDToken, t.Settings.LockID)
		return
	}

	if record == nil {
		return
	}

	t.state.LastUser = record.Username
	t.state.LastEntryTime = formatEntryTime(int64(record.LockDate))
}

// Returns a copy of the cached state, callers must not observe
// later in-place mutations.
func (t *TTLock) snapshot() *device.LockState {
	state := *t.state
	return &state
}

// Formats epoch-ms access timestamp for the last entry time attribute.
// Local time, matching what the rest of the house UI shows.
func formatEntryTime(ms int64) string {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).Format(entryTimeFormat)
}
