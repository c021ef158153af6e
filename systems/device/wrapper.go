// Package device contains lock devices management.
package device

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/plugins/device"
	"go-home.io/x/ttlock/plugins/device/enums"
	"go-home.io/x/ttlock/providers"
	"go-home.io/x/ttlock/utils"
)

// Minimum allowed polling interval.
const minUpdateIntervalSec = 10

// IDeviceWrapperProvider interface for any loaded device.
type IDeviceWrapperProvider interface {
	GetID() string
	GetCommands() []string
	Unload()
	InvokeCommand(enums.Command, map[string]interface{})
	GetUpdateMessage() *common.MsgDeviceUpdate
}

// Data required for a new wrapper.
type wrapperConstruct struct {
	DeviceType       enums.DeviceType
	DeviceConfigName string
	DeviceInterface  device.IDevice
	DeviceState      interface{}
	Logger           common.ILoggerProvider
	Cron             providers.ICronProvider
	Validator        providers.IValidatorProvider
	FanOut           providers.IInternalFanOutProvider
	LoadData         *device.InitDataDevice
}

// Device wrapper implementation.
type deviceWrapper struct {
	sync.Mutex

	Ctor *wrapperConstruct

	ID          string
	State       map[enums.Property]interface{}
	Spec        *device.Spec
	CommandsStr []string

	jobID     int
	commands  map[enums.Command]reflect.Value
	firstSeen bool
}

// NewDeviceWrapper constructs a new device wrapper.
func NewDeviceWrapper(ctor *wrapperConstruct) IDeviceWrapperProvider {
	w := deviceWrapper{
		Ctor:      ctor,
		firstSeen: true,
	}

	w.Spec = ctor.DeviceInterface.GetSpec()
	if nil == w.Spec {
		w.Spec = &device.Spec{
			SupportedProperties: make([]enums.Property, 0),
			SupportedCommands:   make([]enums.Command, 0),
			UpdatePeriod:        0,
		}
	}

	if !w.setState(ctor.DeviceState) {
		ctor.Logger.Warn("Failed to fetch device state",
			common.LogDeviceTypeToken, ctor.DeviceType.String(), common.LogDeviceNameToken, w.GetID())
	}

	interval := int(w.Spec.UpdatePeriod / time.Second)
	if interval > 0 {
		if interval < minUpdateIntervalSec {
			interval = minUpdateIntervalSec
		}

		var err error
		w.jobID, err = ctor.Cron.AddFunc(fmt.Sprintf("@every %ds", interval), w.pullUpdate)
		if err != nil {
			ctor.Logger.Warn("Failed to schedule device updates",
				common.LogDeviceTypeToken, ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID)
		}

		ctor.Logger.Debug(fmt.Sprintf("Polling rate for the device is %d seconds", interval),
			common.LogDeviceTypeToken, ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID)
	}

	w.buildCommandTable(ctor)
	go w.processPushUpdates()

	return &w
}

// GetID returns unique device ID.
// ID is normalized and contains config name, device type and the name
// returned from actual device.
func (w *deviceWrapper) GetID() string {
	if w.ID == "" {
		w.ID = fmt.Sprintf("%s.%s.%s", utils.NormalizeDeviceName(w.Ctor.DeviceConfigName),
			utils.NormalizeDeviceName(w.Ctor.DeviceType.String()),
			utils.NormalizeDeviceName(w.Ctor.DeviceInterface.GetName()))
	}
	return w.ID
}

// GetCommands returns list of supported commands.
func (w *deviceWrapper) GetCommands() []string {
	return w.CommandsStr
}

// Unload stops all background activities.
func (w *deviceWrapper) Unload() {
	w.Ctor.DeviceInterface.Unload()
	if 0 != w.jobID {
		w.Ctor.Cron.RemoveFunc(w.jobID)
	}

	close(w.Ctor.LoadData.DeviceStateUpdateChan)
}

// InvokeCommand performs a call to the device.
// This method validates whether device actually reported this operation as supported.
func (w *deviceWrapper) InvokeCommand(cmdName enums.Command, param map[string]interface{}) {
	w.Lock()
	method, ok := w.commands[cmdName]
	w.Unlock()
	if !ok {
		w.Ctor.Logger.Warn("Device doesn't support this command",
			common.LogDeviceTypeToken, w.Ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID,
			common.LogDeviceCommandToken, cmdName.String())
		return
	}

	w.Ctor.Logger.Debug("Invoking device command",
		common.LogDeviceTypeToken, w.Ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID,
		common.LogDeviceCommandToken, cmdName.String())

	results := method.Call(nil)

	if len(results) > 0 && results[0].Interface() != nil {
		w.Ctor.Logger.Error("Got error while invoking device command", results[0].Interface().(error),
			common.LogDeviceTypeToken, w.Ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID,
			common.LogDeviceCommandToken, cmdName.String())

		return
	}

	if w.Spec.PostCommandDeferUpdate > 0 {
		time.Sleep(w.Spec.PostCommandDeferUpdate)
	}

	w.pullUpdate()
}

// GetUpdateMessage constructs device update message.
func (w *deviceWrapper) GetUpdateMessage() *common.MsgDeviceUpdate {
	w.Lock()
	defer w.Unlock()

	return &common.MsgDeviceUpdate{
		ID:        w.GetID(),
		Name:      w.Ctor.DeviceInterface.GetName(),
		Type:      w.Ctor.DeviceType,
		State:     w.State,
		FirstSeen: w.firstSeen,
	}
}

// Builds the command dispatch table from the device spec.
// A command is exposed only when it is allowed for the device type and
// the plugin actually implements the method behind it.
func (w *deviceWrapper) buildCommandTable(ctor *wrapperConstruct) {
	w.CommandsStr = make([]string, 0)
	w.commands = make(map[enums.Command]reflect.Value)
	for _, v := range w.Spec.SupportedCommands {
		if !v.IsCommandAllowed(ctor.DeviceType) {
			ctor.Logger.Warn("Device claimed restricted command",
				common.LogDeviceTypeToken, ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID,
				common.LogDeviceCommandToken, v.String())
			continue
		}

		method := reflect.ValueOf(w.Ctor.DeviceInterface).MethodByName(v.GetCommandMethodName())
		if !method.IsValid() {
			ctor.Logger.Warn("Device claimed non-implemented command",
				common.LogDeviceTypeToken, ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID,
				common.LogDeviceCommandToken, v.String())
			continue
		}

		w.commands[v] = method
		w.CommandsStr = append(w.CommandsStr, v.String())
	}
}

// Updates internal device state which is stored in wrapper.
func (w *deviceWrapper) setState(deviceState interface{}) bool {
	if nil == deviceState || reflect.ValueOf(deviceState).Kind() == reflect.Ptr && reflect.ValueOf(deviceState).IsNil() {
		return false
	}

	allowedProps, ok := enums.AllowedProperties[w.Ctor.DeviceType]
	if !ok {
		w.Ctor.Logger.Warn("Received unknown device type",
			common.LogDeviceTypeToken, w.Ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID)
		return false
	}

	rt, rv := reflect.TypeOf(deviceState), reflect.ValueOf(deviceState)
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
		rv = rv.Elem()
	}

	w.State = make(map[enums.Property]interface{}, rt.NumField())
	for ii := 0; ii < rt.NumField(); ii++ {
		field := rt.Field(ii)
		jsonKey := field.Tag.Get("json")
		if "" == jsonKey {
			continue
		}

		prop, err := enums.PropertyString(jsonKey)
		if err != nil {
			w.Ctor.Logger.Warn("Received unknown device property", common.LogDevicePropertyToken, jsonKey,
				common.LogDeviceTypeToken, w.Ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID)
			continue
		}

		if !enums.SliceContainsProperty(w.Spec.SupportedProperties, prop) {
			continue
		}

		if !enums.SliceContainsProperty(allowedProps, prop) {
			continue
		}

		w.State[prop] = rv.Field(ii).Interface()
	}

	return true
}

// Accepts updates pushed by devices which report state on their own,
// outside of the polling schedule. Exits when the device is unloaded.
func (w *deviceWrapper) processPushUpdates() {
	for upd := range w.Ctor.LoadData.DeviceStateUpdateChan {
		w.Lock()
		ok := w.setState(upd.State)
		w.Unlock()

		if !ok {
			continue
		}

		w.Ctor.FanOut.ChannelInDeviceUpdates() <- w.GetUpdateMessage()
	}
}

// Performs data pull from the device and notifies the rest of the system.
func (w *deviceWrapper) pullUpdate() {
	state, err := w.fetchState()
	if err != nil {
		w.Ctor.Logger.Error("Failed to update device state", err,
			common.LogDeviceTypeToken, w.Ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID)
		return
	}

	w.Lock()
	ok := w.setState(state)
	w.Unlock()

	if !ok {
		w.Ctor.Logger.Error("Failed to update device state", &ErrNoDataFromDevice{},
			common.LogDeviceTypeToken, w.Ctor.DeviceType.String(), common.LogDeviceNameToken, w.ID)
		return
	}

	w.Ctor.FanOut.ChannelInDeviceUpdates() <- w.GetUpdateMessage()
	w.Lock()
	w.firstSeen = false
	w.Unlock()
}

// Executes update method of the device implementation.
func (w *deviceWrapper) fetchState() (interface{}, error) {
	switch w.Ctor.DeviceType {
	case enums.DevLock:
		return w.Ctor.DeviceInterface.(device.ILock).Update()
	}

	return nil, &ErrUnknownDeviceType{}
}
