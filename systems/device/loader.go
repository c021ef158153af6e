package device

import (
	"github.com/pkg/errors"
	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/plugins/device"
	"go-home.io/x/ttlock/plugins/device/enums"
	"go-home.io/x/ttlock/plugins/ttlock"
	"go-home.io/x/ttlock/providers"
	"go-home.io/x/ttlock/systems/logger"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system representation.
	logSystem = "device"
	// Name of the lock device provider.
	lockProvider = "ttlock"
)

// ConstructDevice has data required for a new device loader.
type ConstructDevice struct {
	ConfigName string
	RawConfig  []byte
	Settings   providers.ISettingsProvider
}

// LoadDevice parses lock device config and instantiates the device.
func LoadDevice(ctor *ConstructDevice) (IDeviceWrapperProvider, error) {
	logCtor := &logger.ConstructPluginLogger{
		SystemLogger: ctor.Settings.PluginLogger(),
		Provider:     lockProvider,
		System:       logSystem,
		ExtraFields: map[string]string{
			common.LogNameToken:       ctor.ConfigName,
			common.LogDeviceTypeToken: enums.DevLock.String(),
		},
	}

	log := logger.NewPluginLogger(logCtor)

	deviceSettings := &ttlock.Settings{}
	err := yaml.Unmarshal(ctor.RawConfig, deviceSettings)
	if err != nil {
		log.Error("Failed to parse device config", err)
		return nil, errors.Wrap(err, "config yaml parse failed")
	}

	if !ctor.Settings.Validator().Validate(deviceSettings) {
		return nil, &ErrBadDeviceConfig{}
	}

	err = deviceSettings.Validate()
	if err != nil {
		log.Error("Device config is invalid", err)
		return nil, errors.Wrap(err, "config validation failed")
	}

	loadData := &device.InitDataDevice{
		Logger:                log,
		Secret:                ctor.Settings.Secrets(),
		DeviceStateUpdateChan: make(chan *device.StateUpdateData, 10),
	}

	lock := &ttlock.TTLock{Settings: deviceSettings}

	err = lock.Init(loadData)
	if err != nil {
		log.Error("Failed to init device", err)
		return nil, errors.Wrap(err, "device init failed")
	}

	state, err := lock.Load()
	if err != nil {
		log.Error("Failed to load device", err)
		return nil, errors.Wrap(err, "device load failed")
	}

	deviceCtor := &wrapperConstruct{
		DeviceType:       enums.DevLock,
		DeviceConfigName: ctor.ConfigName,
		DeviceInterface:  lock,
		DeviceState:      state,
		Logger:           log,
		Cron:             ctor.Settings.Cron(),
		Validator:        ctor.Settings.Validator(),
		FanOut:           ctor.Settings.FanOut(),
		LoadData:         loadData,
	}

	return NewDeviceWrapper(deviceCtor), nil
}
