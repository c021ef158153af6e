// Package server contains the TTLock bridge server.
package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/providers"
	"go-home.io/x/ttlock/systems/device"
)

const (
	// Logger system representation.
	logSystem = "server"
)

// BridgeServer describes the lock bridge node.
type BridgeServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	state      IServerStateProvider
	wsSettings websocket.Upgrader
}

// NewServer constructs a new bridge server.
func NewServer(settings providers.ISettingsProvider) (*BridgeServer, error) {
	server := BridgeServer{
		Logger:   settings.SystemLogger(),
		Settings: settings,

		wsSettings: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	server.state = newServerState(settings)
	return &server, nil
}

// Start launches the bridge server.
func (s *BridgeServer) Start() {
	go func() {
		sl := s.Settings.MasterSettings().DelayedStart
		if sl > 0 {
			time.Sleep(time.Duration(sl) * time.Second)
		}

		s.loadDevices()
	}()

	go s.processDeviceUpdates()

	router := mux.NewRouter()
	s.registerAPI(router)
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", s.Settings.MasterSettings().Port),
			handlers.RecoveryHandler()(router))
		if err != nil {
			s.Logger.Fatal("Failed to start server", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", s.Settings.MasterSettings().Port),
		common.LogSystemToken, logSystem)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	for range c {
		s.Logger.Info("Received stop command, exiting", common.LogSystemToken, logSystem)
		s.state.Unload()
		os.Exit(0)
	}
}

// Registers API endpoints.
func (s *BridgeServer) registerAPI(router *mux.Router) {
	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/devices", s.getDevices).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/device/{%s}", urlDeviceID), s.getDevice).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/device/{%s}/{%s}", urlDeviceID, urlCommandName),
		s.deviceCommand).Methods(http.MethodPost)
	apiRouter.HandleFunc("/ws", s.handleWS)

	router.Use(s.logMiddleware)
}

// Loads all configured lock devices.
// A device that fails to load is skipped, the rest of the bridge
// keeps running.
func (s *BridgeServer) loadDevices() {
	for _, cfg := range s.Settings.LocksConfig() {
		ctor := &device.ConstructDevice{
			ConfigName: cfg.Name,
			RawConfig:  cfg.RawConfig,
			Settings:   s.Settings,
		}

		wrapper, err := device.LoadDevice(ctor)
		if err != nil {
			s.Logger.Error("Failed to load lock device", err,
				common.LogNameToken, cfg.Name, common.LogSystemToken, logSystem)
			continue
		}

		s.state.Add(wrapper)
		s.Logger.Info("Loaded lock device", common.LogDeviceNameToken, wrapper.GetID(),
			common.LogSystemToken, logSystem)
	}
}

// Processes device updates received through the fan-out.
func (s *BridgeServer) processDeviceUpdates() {
	subID, updates := s.Settings.FanOut().SubscribeDeviceUpdates()
	defer s.Settings.FanOut().UnSubscribeDeviceUpdates(subID)

	for msg := range updates {
		s.state.DeviceUpdate(msg)
	}
}
