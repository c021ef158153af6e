package providers

// ICronProvider defines the scheduler used for periodic device polls.
type ICronProvider interface {
	AddFunc(spec string, cmd func()) (int, error)
	RemoveFunc(id int)
}
