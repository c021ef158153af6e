package server

import (
	"sync"

	"github.com/patrickmn/go-cache"
	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/plugins/device/enums"
	"go-home.io/x/ttlock/providers"
	"go-home.io/x/ttlock/systems/device"
	"go-home.io/x/ttlock/utils"
)

// IServerStateProvider defines server state logic.
type IServerStateProvider interface {
	Add(wrapper device.IDeviceWrapperProvider)
	DeviceUpdate(msg *common.MsgDeviceUpdate)
	GetAllDevices() []*knownDevice
	GetDevice(id string) *knownDevice
	Command(id string, cmd enums.Command) error
	Unload()
}

// Server state holds wrappers of loaded devices plus a cache
// of their last known snapshots.
type serverState struct {
	sync.Mutex

	Settings providers.ISettingsProvider
	logger   common.ILoggerProvider

	devices map[string]device.IDeviceWrapperProvider
	cache   *cache.Cache
}

// Constructs a new server state.
func newServerState(settings providers.ISettingsProvider) IServerStateProvider {
	return &serverState{
		Settings: settings,
		logger:   settings.SystemLogger(),
		devices:  make(map[string]device.IDeviceWrapperProvider),
		cache:    cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// Add registers a new device wrapper and caches its first snapshot.
func (s *serverState) Add(wrapper device.IDeviceWrapperProvider) {
	s.Lock()
	defer s.Unlock()

	s.devices[wrapper.GetID()] = wrapper
	s.cacheUpdate(wrapper.GetUpdateMessage(), wrapper)
}

// DeviceUpdate processes a single update message from the fan-out.
func (s *serverState) DeviceUpdate(msg *common.MsgDeviceUpdate) {
	s.Lock()
	defer s.Unlock()

	wrapper, ok := s.devices[msg.ID]
	if !ok {
		s.logger.Warn("Received update for unknown device",
			common.LogDeviceNameToken, msg.ID)
		return
	}

	s.cacheUpdate(msg, wrapper)
}

// GetAllDevices returns last known snapshots of all devices.
func (s *serverState) GetAllDevices() []*knownDevice {
	s.Lock()
	defer s.Unlock()

	result := make([]*knownDevice, 0, s.cache.ItemCount())
	for _, v := range s.cache.Items() {
		result = append(result, v.Object.(*knownDevice))
	}

	return result
}

// GetDevice returns last known snapshot of a single device.
func (s *serverState) GetDevice(id string) *knownDevice {
	s.Lock()
	defer s.Unlock()

	kd, ok := s.cache.Get(id)
	if !ok {
		return nil
	}

	return kd.(*knownDevice)
}

// Command dispatches a command to the device wrapper.
func (s *serverState) Command(id string, cmd enums.Command) error {
	s.Lock()
	wrapper, ok := s.devices[id]
	s.Unlock()

	if !ok {
		return &ErrDeviceNotFound{ID: id}
	}

	wrapper.InvokeCommand(cmd, nil)
	return nil
}

// Unload stops all devices.
func (s *serverState) Unload() {
	s.Lock()
	defer s.Unlock()

	for _, v := range s.devices {
		v.Unload()
	}
}

// Stores device snapshot in the cache. Lock must be held.
func (s *serverState) cacheUpdate(msg *common.MsgDeviceUpdate, wrapper device.IDeviceWrapperProvider) {
	kd := &knownDevice{
		ID:       msg.ID,
		Name:     msg.Name,
		Type:     msg.Type,
		State:    msg.State,
		LastSeen: utils.TimeNow(),
		Commands: wrapper.GetCommands(),
	}

	s.cache.Set(msg.ID, kd, cache.NoExpiration)
}
