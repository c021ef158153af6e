package providers

import "go-home.io/x/ttlock/plugins/common"

// IInternalFanOutProvider defines internal fan-out provider
// which is used for pushing devices updates into the channel.
type IInternalFanOutProvider interface {
	common.IFanOutProvider
	ChannelInDeviceUpdates() chan *common.MsgDeviceUpdate
}
