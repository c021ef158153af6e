package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// urlDeviceID describes device ID URL param.
	urlDeviceID muxKeys = "deviceID"
	// urlCommandName describes device command name URL param.
	urlCommandName muxKeys = "commandName"
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
	// queryFilter describes devices filter query param.
	queryFilter = "filter"
)
