package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-home.io/x/ttlock/mocks"
	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/plugins/device/enums"
	"go-home.io/x/ttlock/providers"
)

// Fake device wrapper.
type fakeWrapper struct {
	id       string
	state    map[enums.Property]interface{}
	invoked  []enums.Command
	unloaded bool
}

func (f *fakeWrapper) GetID() string {
	return f.id
}

func (f *fakeWrapper) GetCommands() []string {
	return []string{"on", "off", "toggle"}
}

func (f *fakeWrapper) Unload() {
	f.unloaded = true
}

func (f *fakeWrapper) InvokeCommand(cmd enums.Command, _ map[string]interface{}) {
	f.invoked = append(f.invoked, cmd)
}

func (f *fakeWrapper) GetUpdateMessage() *common.MsgDeviceUpdate {
	return &common.MsgDeviceUpdate{
		ID:    f.id,
		Name:  f.id,
		Type:  enums.DevLock,
		State: f.state,
	}
}

// Constructs a new fake lock wrapper.
func getFakeWrapper(id string) *fakeWrapper {
	return &fakeWrapper{
		id: id,
		state: map[enums.Property]interface{}{
			enums.PropOn:           true,
			enums.PropBatteryLevel: uint8(80),
		},
	}
}

// Constructs a bridge server with an API test listener.
func getServer(wrappers ...*fakeWrapper) (providers.ISettingsProvider, *BridgeServer, *httptest.Server) {
	settings := mocks.FakeNewSettings(nil, nil)
	srv, _ := NewServer(settings)

	for _, w := range wrappers {
		srv.state.Add(w)
	}

	router := mux.NewRouter()
	srv.registerAPI(router)
	return settings, srv, httptest.NewServer(router)
}

// Decodes devices API response.
func getDevicesResponse(t *testing.T, url string) []*knownDevice {
	resp, err := http.Get(url) // nolint: gosec
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck
	require.Equal(t, http.StatusOK, resp.StatusCode, "status")

	devices := make([]*knownDevice, 0)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&devices))
	return devices
}

// Tests querying all devices.
func TestGetDevices(t *testing.T) {
	_, _, api := getServer(getFakeWrapper("front_door.lock.lock1"), getFakeWrapper("back_door.lock.lock2"))
	defer api.Close()

	devices := getDevicesResponse(t, fmt.Sprintf("%s/api/v1/devices", api.URL))
	assert.Equal(t, 2, len(devices), "count")

	for _, d := range devices {
		assert.Equal(t, enums.DevLock, d.Type, "type")
		assert.Equal(t, true, d.State[enums.PropOn], "on")
		assert.Contains(t, d.Commands, "toggle", "commands")
	}
}

// Tests devices glob filtering.
func TestGetDevicesFilter(t *testing.T) {
	_, _, api := getServer(getFakeWrapper("front_door.lock.lock1"), getFakeWrapper("back_door.lock.lock2"))
	defer api.Close()

	devices := getDevicesResponse(t, fmt.Sprintf("%s/api/v1/devices?filter=front*", api.URL))
	require.Equal(t, 1, len(devices), "count")
	assert.Equal(t, "front_door.lock.lock1", devices[0].ID, "id")

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/devices?filter=%s", api.URL, "%5B")) // nolint: gosec
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "bad filter")
}

// Tests querying a single device.
func TestGetDevice(t *testing.T) {
	_, _, api := getServer(getFakeWrapper("front_door.lock.lock1"))
	defer api.Close()

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/device/front_door.lock.lock1", api.URL)) // nolint: gosec
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck
	require.Equal(t, http.StatusOK, resp.StatusCode, "status")

	kd := &knownDevice{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(kd))
	assert.Equal(t, "front_door.lock.lock1", kd.ID, "id")

	resp, err = http.Get(fmt.Sprintf("%s/api/v1/device/unknown", api.URL)) // nolint: gosec
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "unknown device")
}

// Tests commands invocation through the API.
func TestDeviceCommand(t *testing.T) {
	w := getFakeWrapper("front_door.lock.lock1")
	_, _, api := getServer(w)
	defer api.Close()

	resp, err := http.Post(fmt.Sprintf("%s/api/v1/device/front_door.lock.lock1/off", api.URL),
		"application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode, "status")
	require.Equal(t, 1, len(w.invoked), "invoked")
	assert.Equal(t, enums.CmdOff, w.invoked[0], "command")

	resp, err = http.Post(fmt.Sprintf("%s/api/v1/device/front_door.lock.lock1/explode", api.URL),
		"application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "unknown command")

	resp, err = http.Post(fmt.Sprintf("%s/api/v1/device/unknown/on", api.URL),
		"application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "unknown device")
}

// Tests that device updates are pushed through the web socket.
func TestWSUpdates(t *testing.T) {
	w := getFakeWrapper("front_door.lock.lock1")
	settings, _, api := getServer(w)
	defer api.Close()

	url := fmt.Sprintf("%s/api/v1/ws", strings.Replace(api.URL, "http", "ws", 1))
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close() // nolint: errcheck

	// Handler needs a moment to subscribe.
	time.Sleep(100 * time.Millisecond)
	settings.FanOut().ChannelInDeviceUpdates() <- w.GetUpdateMessage()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kd := &knownDevice{}
	require.NoError(t, conn.ReadJSON(kd))
	assert.Equal(t, "front_door.lock.lock1", kd.ID, "id")
	assert.Equal(t, true, kd.State[enums.PropOn], "state")
}

// Tests state updates processing.
func TestStateDeviceUpdate(t *testing.T) {
	w := getFakeWrapper("front_door.lock.lock1")
	_, srv, api := getServer(w)
	defer api.Close()

	w.state[enums.PropBatteryLevel] = uint8(10)
	srv.state.DeviceUpdate(w.GetUpdateMessage())

	kd := srv.state.GetDevice("front_door.lock.lock1")
	require.NotNil(t, kd)
	assert.Equal(t, uint8(10), kd.State[enums.PropBatteryLevel], "battery")

	// Update for a device that was never added is dropped.
	srv.state.DeviceUpdate(&common.MsgDeviceUpdate{ID: "ghost"})
	assert.Nil(t, srv.state.GetDevice("ghost"), "unknown device")
}

// Tests devices unloading on shutdown.
func TestStateUnload(t *testing.T) {
	w := getFakeWrapper("front_door.lock.lock1")
	_, srv, api := getServer(w)
	defer api.Close()

	srv.state.Unload()
	assert.True(t, w.unloaded)
}
