package ttlock

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-home.io/x/ttlock/mocks"
	"go-home.io/x/ttlock/plugins/device"
)

// Constructs an initialized device against the fake vendor.
func newTestLock(t *testing.T, v *fakeVendor) *TTLock {
	lock := &TTLock{Settings: v.settings()}
	err := lock.Init(&device.InitDataDevice{
		Logger: mocks.FakeNewLogger(nil),
		Secret: mocks.FakeNewSecretStore(nil),
	})
	require.NoError(t, err, "init")
	return lock
}

// Tests first poll with a healthy vendor.
func TestFirstUpdate(t *testing.T) {
	v := newFakeVendor()
	defer v.stop()

	lock := newTestLock(t, v)
	state, err := lock.Load()
	require.NoError(t, err)

	assert.True(t, state.Available, "available")
	assert.True(t, state.On, "locked by default")
	assert.Equal(t, uint8(80), state.BatteryLevel, "battery")
	assert.Equal(t, "Front", state.Alias, "alias")
	assert.Equal(t, "alice", state.LastUser, "last user")
	assert.Equal(t, "112233", state.LockID, "lock id")
}

// Tests that open state code 1 overrides the locked assumption.
func TestUpdateOpenState(t *testing.T) {
	v := newFakeVendor()
	defer v.stop()

	lock := newTestLock(t, v)

	v.openStateBody = `{"state":1}`
	state, err := lock.Update()
	require.NoError(t, err)
	assert.False(t, state.On, "unlocked")

	v.openStateBody = `{"state":0}`
	state, err = lock.Update()
	require.NoError(t, err)
	assert.True(t, state.On, "locked")

	// Endpoint failure keeps the locked assumption from the detail call.
	v.openStateStatus = http.StatusInternalServerError
	state, err = lock.Update()
	require.NoError(t, err)
	assert.True(t, state.On, "locked on failure")
}

// Tests that a failed detail call leaves previous state untouched.
func TestUpdateDetailFailure(t *testing.T) {
	v := newFakeVendor()
	defer v.stop()

	lock := newTestLock(t, v)
	before, err := lock.Update()
	require.NoError(t, err)
	require.True(t, before.Available, "first poll")

	v.detailStatus = http.StatusInternalServerError
	v.openStateBody = `{"state":1}`
	v.recordsBody = `{"list":[{"username":"bob","lockDate":1700000360000}]}`

	after, err := lock.Update()
	require.NoError(t, err)
	assert.Equal(t, before, after, "state unchanged")
}

// Tests that empty access history leaves last user untouched.
func TestUpdateEmptyHistory(t *testing.T) {
	v := newFakeVendor()
	defer v.stop()

	lock := newTestLock(t, v)
	before, err := lock.Update()
	require.NoError(t, err)
	require.Equal(t, "alice", before.LastUser, "first poll")

	v.recordsBody = `{"list":[]}`
	after, err := lock.Update()
	require.NoError(t, err)
	assert.Equal(t, "alice", after.LastUser, "last user kept")
	assert.Equal(t, before.LastEntryTime, after.LastEntryTime, "entry time kept")
}

// Tests optimistic state update on lock and unlock commands.
func TestCommands(t *testing.T) {
	v := newFakeVendor()
	defer v.stop()

	lock := newTestLock(t, v)

	assert.NoError(t, lock.Off(), "unlock")
	assert.False(t, lock.state.On, "unlocked")

	assert.NoError(t, lock.On(), "lock")
	assert.True(t, lock.state.On, "locked")

	assert.NoError(t, lock.Toggle(), "toggle")
	assert.False(t, lock.state.On, "toggled to unlocked")
	assert.Equal(t, "/v3/lock/unlock", v.lastCommand, "toggle sent unlock")
}

// Tests that a rejected command changes nothing and raises no error.
func TestCommandVendorFailure(t *testing.T) {
	v := newFakeVendor()
	defer v.stop()

	lock := newTestLock(t, v)
	require.True(t, lock.state.On, "initial")

	v.commandStatus = http.StatusInternalServerError
	assert.NoError(t, lock.Off(), "no error escapes")
	assert.True(t, lock.state.On, "state unchanged")
}

// Tests that failed initial auth doesn't fail the device and the token
// is requested again on the next operation.
func TestInitAuthFailure(t *testing.T) {
	v := newFakeVendor()
	defer v.stop()

	v.tokenStatus = http.StatusUnauthorized
	lock := newTestLock(t, v)
	assert.Equal(t, 1, v.tokenCalls, "initial attempt")
	assert.Empty(t, lock.client.accessToken, "no token")

	// Expired absent token triggers another request on the next command.
	v.tokenStatus = http.StatusOK
	assert.NoError(t, lock.On(), "lock")
	assert.Equal(t, 2, v.tokenCalls, "token re-requested")
	assert.True(t, lock.state.On, "locked")
}

// Tests last entry time display format.
func TestFormatEntryTime(t *testing.T) {
	ms := int64(1700000000000)
	expected := time.Unix(ms/1000, 0).Format("Mon, 02 Jan 2006 15:04")
	assert.Equal(t, expected, formatEntryTime(ms))
}

// Tests the device spec.
func TestGetSpec(t *testing.T) {
	v := newFakeVendor()
	defer v.stop()

	lock := newTestLock(t, v)
	spec := lock.GetSpec()

	assert.Equal(t, 30*time.Second, spec.UpdatePeriod, "update period")
	assert.Len(t, spec.SupportedCommands, 3, "commands")
	assert.Len(t, spec.SupportedProperties, 15, "properties")
	assert.Equal(t, "Front Door", lock.GetName(), "name")
}
