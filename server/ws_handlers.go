package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Handles WS upgrade request.
func (s *BridgeServer) handleWS(writer http.ResponseWriter, request *http.Request) {
	c, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err)
		return
	}

	go s.processWSConnection(c)
}

// Processes incoming WS connections.
// Every device update received through the fan-out is pushed
// to the socket as a knownDevice snapshot.
//noinspection GoUnhandledErrorResult
func (s *BridgeServer) processWSConnection(conn *websocket.Conn) {
	stop := make(chan bool, 1)
	go s.processIncomingWSMessages(conn, stop)

	deviceSubID, deviceUpd := s.Settings.FanOut().SubscribeDeviceUpdates()
	defer s.Settings.FanOut().UnSubscribeDeviceUpdates(deviceSubID)

	for {
		select {
		case msg := <-stop:
			if msg {
				return
			}
		case msg, ok := <-deviceUpd:
			{
				if !ok {
					return
				}

				kd := s.state.GetDevice(msg.ID)
				if nil == kd {
					continue
				}

				conn.WriteJSON(kd) // nolint: gosec, errcheck
			}
		}
	}
}

// Processes incoming WS messages.
// The bridge doesn't accept commands over the socket, reads are
// needed only to detect a closed connection.
//noinspection GoUnhandledErrorResult
func (s *BridgeServer) processIncomingWSMessages(conn *websocket.Conn, stop chan bool) {
	defer conn.Close() // nolint: errcheck
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			s.Logger.Debug("Closing WS connection")
			stop <- true
			return
		}
	}
}
