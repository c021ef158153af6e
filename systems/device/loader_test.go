package device

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-home.io/x/ttlock/mocks"
	"go-home.io/x/ttlock/plugins/device/enums"
)

// Starts a stub lock cloud with canned responses.
func getFakeCloud() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"access_token":"token-1","expires_in":7776000}`) // nolint: gosec, errcheck
	})
	mux.HandleFunc("/v3/lock/detail", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"lockAlias":"Front","electricQuantity":80,"modelNum":"M1"}`) // nolint: gosec, errcheck
	})
	mux.HandleFunc("/v3/lock/queryOpenState", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"state":0}`) // nolint: gosec, errcheck
	})
	mux.HandleFunc("/v3/lockRecord/list", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"list":[{"username":"alice","lockDate":1700000000000}]}`) // nolint: gosec, errcheck
	})

	return httptest.NewServer(mux)
}

// Tests loading a lock end to end against a stub cloud.
func TestLoadDevice(t *testing.T) {
	cloud := getFakeCloud()
	defer cloud.Close()

	cfg := fmt.Sprintf(`name: Front Door
lockId: "112233"
clientId: cid
clientSecret: cs
username: john
password: doe
domain: %s
`, cloud.URL)

	settings := mocks.FakeNewSettings(nil, nil)
	wrapper, err := LoadDevice(&ConstructDevice{
		ConfigName: "main",
		RawConfig:  []byte(cfg),
		Settings:   settings,
	})

	require.NoError(t, err)
	assert.Equal(t, "main.lock.front_door", wrapper.GetID(), "id")

	msg := wrapper.GetUpdateMessage()
	assert.Equal(t, true, msg.State[enums.PropOn], "locked")
	assert.Equal(t, uint8(80), msg.State[enums.PropBatteryLevel], "battery")
	assert.Equal(t, "alice", msg.State[enums.PropLastUser], "last user")
}

// Tests that incomplete config fails validation.
func TestLoadDeviceBadConfig(t *testing.T) {
	settings := mocks.FakeNewSettings(nil, nil)

	_, err := LoadDevice(&ConstructDevice{
		ConfigName: "main",
		RawConfig:  []byte("name: door\n"),
		Settings:   settings,
	})

	require.Error(t, err)
	assert.IsType(t, &ErrBadDeviceConfig{}, err, "error type")
}

// Tests that broken yaml is reported.
func TestLoadDeviceBadYaml(t *testing.T) {
	settings := mocks.FakeNewSettings(nil, nil)

	_, err := LoadDevice(&ConstructDevice{
		ConfigName: "main",
		RawConfig:  []byte("\t: not yaml"),
		Settings:   settings,
	})

	assert.Error(t, err)
}
