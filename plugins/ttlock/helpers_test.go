package ttlock

import (
	"fmt"
	"net/http"
	"net/http/httptest"
)

// Fake TTLock cloud vendor.
type fakeVendor struct {
	srv *httptest.Server

	tokenStatus   int
	expiresIn     int64
	tokenCalls    int
	commandStatus int
	commandCalls  int
	lastCommand   string

	detailStatus    int
	detailBody      string
	openStateStatus int
	openStateBody   string
	recordsStatus   int
	recordsBody     string
}

// Constructs a new fake vendor with sane defaults.
func newFakeVendor() *fakeVendor {
	v := &fakeVendor{
		tokenStatus:     http.StatusOK,
		expiresIn:       7776000,
		commandStatus:   http.StatusOK,
		detailStatus:    http.StatusOK,
		openStateStatus: http.StatusOK,
		recordsStatus:   http.StatusOK,
		detailBody: `{"lockAlias":"Front","autoLockTime":10,"electricQuantity":80,
			"firmwareRevision":"1.0.5","hardwareRevision":"2.1","modelNum":"M201",
			"passageMode":2,"passageModeAutoUnlock":2,"soundVolume":1,"tamperAlert":0}`,
		openStateBody: `{"state":0}`,
		recordsBody:   `{"list":[{"username":"alice","lockDate":1700000000000}]}`,
	}

	router := http.NewServeMux()
	router.HandleFunc("/oauth2/token", v.handleToken)
	router.HandleFunc("/v3/lock/lock", v.handleCommand)
	router.HandleFunc("/v3/lock/unlock", v.handleCommand)
	router.HandleFunc("/v3/lock/detail", v.handleDetail)
	router.HandleFunc("/v3/lock/queryOpenState", v.handleOpenState)
	router.HandleFunc("/v3/lockRecord/list", v.handleRecords)

	v.srv = httptest.NewServer(router)
	return v
}

// Returns settings pointing to the fake vendor.
func (v *fakeVendor) settings() *Settings {
	return &Settings{
		Domain:       v.srv.URL,
		Name:         "Front Door",
		LockID:       "112233",
		ClientID:     "client",
		ClientSecret: "secret",
		Username:     "user",
		Password:     "pass",
	}
}

func (v *fakeVendor) stop() {
	v.srv.Close()
}

//noinspection GoUnhandledErrorResult
func (v *fakeVendor) handleToken(w http.ResponseWriter, r *http.Request) {
	v.tokenCalls++
	if v.tokenStatus != http.StatusOK {
		w.WriteHeader(v.tokenStatus)
		return
	}

	fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":%d}`, v.tokenCalls, v.expiresIn) // nolint: gosec, errcheck
}

//noinspection GoUnhandledErrorResult
func (v *fakeVendor) handleCommand(w http.ResponseWriter, r *http.Request) {
	v.commandCalls++
	v.lastCommand = r.URL.Path
	if v.commandStatus != http.StatusOK {
		w.WriteHeader(v.commandStatus)
		return
	}

	fmt.Fprint(w, `{"errcode":0}`) // nolint: gosec, errcheck
}

//noinspection GoUnhandledErrorResult
func (v *fakeVendor) handleDetail(w http.ResponseWriter, r *http.Request) {
	if v.detailStatus != http.StatusOK {
		w.WriteHeader(v.detailStatus)
		return
	}

	fmt.Fprint(w, v.detailBody) // nolint: gosec, errcheck
}

//noinspection GoUnhandledErrorResult
func (v *fakeVendor) handleOpenState(w http.ResponseWriter, r *http.Request) {
	if v.openStateStatus != http.StatusOK {
		w.WriteHeader(v.openStateStatus)
		return
	}

	fmt.Fprint(w, v.openStateBody) // nolint: gosec, errcheck
}

//noinspection GoUnhandledErrorResult
func (v *fakeVendor) handleRecords(w http.ResponseWriter, r *http.Request) {
	if v.recordsStatus != http.StatusOK {
		w.WriteHeader(v.recordsStatus)
		return
	}

	fmt.Fprint(w, v.recordsBody) // nolint: gosec, errcheck
}
