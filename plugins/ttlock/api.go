package ttlock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/utils"
)

const (
	// Early-expiry buffer subtracted from the vendor-reported token
	// lifetime, so a token is never used right before the vendor
	// invalidates it mid-request.
	tokenSafetyMarginMs = 25000
	// Every cloud call shares the same timeout.
	apiTimeout = 10 * time.Second

	// Vendor lock commands.
	cmdLock   = "lock"
	cmdUnlock = "unlock"

	// Open state code returned by queryOpenState for an unlocked door.
	openStateOpen = 1
)

// Token response from oauth2/token.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Response from v3/lock/detail.
type lockDetail struct {
	LockAlias             string `json:"lockAlias"`
	AutoLockTime          int    `json:"autoLockTime"`
	ElectricQuantity      int    `json:"electricQuantity"`
	FirmwareRevision      string `json:"firmwareRevision"`
	HardwareRevision      string `json:"hardwareRevision"`
	ModelNum              string `json:"modelNum"`
	PassageMode           int    `json:"passageMode"`
	PassageModeAutoUnlock int    `json:"passageModeAutoUnlock"`
	SoundVolume           int    `json:"soundVolume"`
	TamperAlert           int    `json:"tamperAlert"`
}

// Response from v3/lock/queryOpenState.
type openState struct {
	State int `json:"state"`
}

// Single entry of v3/lockRecord/list response.
type lockRecord struct {
	Username string      `json:"username"`
	LockDate epochMillis `json:"lockDate"`
}

// Response from v3/lockRecord/list.
type lockRecords struct {
	List []*lockRecord `json:"list"`
}

// epochMillis accepts both numeric and string encoded timestamps,
// the cloud API is not consistent between endpoints.
type epochMillis int64

// UnmarshalJSON implements the json.Unmarshaler interface for epochMillis.
func (m *epochMillis) UnmarshalJSON(data []byte) error {
	val, err := strconv.ParseInt(strings.Trim(string(data), `"`), 10, 64)
	if err != nil {
		return errors.Wrap(err, "epoch millis parse failed")
	}

	*m = epochMillis(val)
	return nil
}

// TTLock cloud API client.
// Owns the access token and its expiry timestamp, both are mutated
// only by a token request.
type cloudClient struct {
	settings *Settings
	logger   common.ILoggerProvider
	client   *http.Client
	baseURL  string

	accessToken    string
	tokenExpiresAt int64
}

// Constructs a new cloud client. Token is not requested here.
// Plain hosts default to https, domain may carry an explicit scheme.
func newCloudClient(settings *Settings, logger common.ILoggerProvider) *cloudClient {
	baseURL := fmt.Sprintf("https://%s", settings.Domain)
	if strings.Contains(settings.Domain, "://") {
		baseURL = settings.Domain
	}

	return &cloudClient{
		settings: settings,
		logger:   logger,
		client:   &http.Client{Timeout: apiTimeout},
		baseURL:  baseURL,
	}
}

// authenticate requests a new access token using the password grant.
// On success both token and expiry timestamp are overwritten.
func (c *cloudClient) authenticate() error {
	form := url.Values{}
	form.Set("client_id", c.settings.ClientID)
	form.Set("client_secret", c.settings.ClientSecret)
	form.Set("username", c.settings.Username)
	form.Set("password", c.settings.Password)

	resp, err := c.client.PostForm(fmt.Sprintf("%s/oauth2/token", c.baseURL), form)
	if err != nil {
		return errors.Wrap(err, "token request failed")
	}

	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return &ErrVendorStatus{StatusCode: resp.StatusCode}
	}

	token := &tokenResponse{}
	err = json.NewDecoder(resp.Body).Decode(token)
	if err != nil {
		return errors.Wrap(err, "token response decode failed")
	}

	c.accessToken = token.AccessToken
	c.tokenExpiresAt = utils.TimeNowMs() + token.ExpiresIn*1000 - tokenSafetyMarginMs
	return nil
}

// ensureToken re-requests the access token when the cached one is past
// its expiry timestamp. A failed refresh keeps the stale token in place,
// the next vendor call fails downstream and gets reported there.
func (c *cloudClient) ensureToken() {
	if utils.TimeNowMs() < c.tokenExpiresAt {
		return
	}

	err := c.authenticate()
	if err != nil {
		c.logger.Error("Failed to refresh access token", err,
			common.LogLockIDToken, c.settings.LockID)
	}
}

// sendCommand posts a lock or unlock command.
func (c *cloudClient) sendCommand(command string) error {
	c.ensureToken()

	form := url.Values{}
	form.Set("clientId", c.settings.ClientID)
	form.Set("accessToken", c.accessToken)
	form.Set("lockId", c.settings.LockID)
	form.Set("date", strconv.FormatInt(utils.TimeNowMs(), 10))

	resp, err := c.client.PostForm(fmt.Sprintf("%s/v3/lock/%s", c.baseURL, command), form)
	if err != nil {
		return errors.Wrap(err, "command request failed")
	}

	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return &ErrVendorStatus{StatusCode: resp.StatusCode}
	}

	return nil
}

// fetchDetail pulls semi-static lock metadata and settings.
func (c *cloudClient) fetchDetail() (*lockDetail, error) {
	detail := &lockDetail{}
	err := c.query("v3/lock/detail", nil, detail)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// fetchOpenState pulls the current open/closed state code.
func (c *cloudClient) fetchOpenState() (*openState, error) {
	state := &openState{}
	err := c.query("v3/lock/queryOpenState", nil, state)
	if err != nil {
		return nil, err
	}

	return state, nil
}

// fetchLastRecord pulls the most recent access record.
// Returns nil when the lock has no history yet.
func (c *cloudClient) fetchLastRecord() (*lockRecord, error) {
	extra := url.Values{}
	extra.Set("pageNo", "1")
	extra.Set("pageSize", "1")

	records := &lockRecords{}
	err := c.query("v3/lockRecord/list", extra, records)
	if err != nil {
		return nil, err
	}

	if len(records.List) == 0 {
		return nil, nil
	}

	return records.List[0], nil
}

// Performs an authenticated GET call. Success is judged solely
// on HTTP 200, the vendor does not use body-level error codes reliably.
func (c *cloudClient) query(path string, extra url.Values, out interface{}) error {
	params := url.Values{}
	params.Set("clientId", c.settings.ClientID)
	params.Set("accessToken", c.accessToken)
	params.Set("lockId", c.settings.LockID)
	params.Set("date", strconv.FormatInt(utils.TimeNowMs(), 10))
	for k, v := range extra {
		params[k] = v
	}

	resp, err := c.client.Get(fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode()))
	if err != nil {
		return errors.Wrap(err, "query request failed")
	}

	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return &ErrVendorStatus{StatusCode: resp.StatusCode}
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return errors.Wrap(err, "query response decode failed")
	}

	return nil
}
