package device

// ILock defines lock plugin interface.
type ILock interface {
	IDevice
	Load() (*LockState, error)
	Update() (*LockState, error)
	On() error
	Off() error
	Toggle() error
}

// LockState returns information about known lock.
type LockState struct {
	On                    bool   `json:"on"`
	Available             bool   `json:"available"`
	BatteryLevel          uint8  `json:"battery_level"`
	Alias                 string `json:"alias"`
	Model                 string `json:"model"`
	FirmwareVersion       string `json:"firmware_version"`
	HardwareVersion       string `json:"hardware_version"`
	AutoLockTime          int    `json:"auto_lock_time"`
	PassageMode           int    `json:"passage_mode"`
	PassageModeAutoUnlock int    `json:"passage_mode_auto_unlock"`
	SoundVolume           int    `json:"sound_volume"`
	TamperAlert           int    `json:"tamper_alert"`
	LockID                string `json:"lock_id"`
	LastUser              string `json:"last_user"`
	LastEntryTime         string `json:"last_entry_time"`
}
