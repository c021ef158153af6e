package server

import (
	"net/http"

	"github.com/gobwas/glob"
	"github.com/gorilla/mux"
	"go-home.io/x/ttlock/plugins/device/enums"
)

// Returns all known devices, optionally filtered by a glob pattern
// over device IDs.
func (s *BridgeServer) getDevices(writer http.ResponseWriter, request *http.Request) {
	devices := s.state.GetAllDevices()

	pattern := request.URL.Query().Get(queryFilter)
	if pattern == "" {
		respond(writer, devices)
		return
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		respondError(writer, "incorrect filter")
		return
	}

	filtered := make([]*knownDevice, 0)
	for _, v := range devices {
		if g.Match(v.ID) {
			filtered = append(filtered, v)
		}
	}

	respond(writer, filtered)
}

// Returns a single device.
func (s *BridgeServer) getDevice(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	kd := s.state.GetDevice(vars[string(urlDeviceID)])
	if nil == kd {
		respondNotFound(writer)
		return
	}

	respond(writer, kd)
}

// Executes device command.
// Vendor-side failures are not reported here, the command is
// fire-and-forget and state catches up on the next poll.
func (s *BridgeServer) deviceCommand(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)

	cmdName := vars[string(urlCommandName)]
	cmd, err := enums.CommandString(cmdName)
	if err != nil {
		respondOkError(writer, &ErrUnknownCommand{Name: cmdName})
		return
	}

	respondOkError(writer, s.state.Command(vars[string(urlDeviceID)], cmd))
}
