package server

import (
	"go-home.io/x/ttlock/plugins/device/enums"
)

// Known device, last seen snapshot exposed through the API.
type knownDevice struct {
	ID       string                         `json:"id"`
	Name     string                         `json:"name"`
	Type     enums.DeviceType               `json:"type"`
	State    map[enums.Property]interface{} `json:"state"`
	LastSeen int64                          `json:"last_seen"`
	Commands []string                       `json:"commands"`
}
