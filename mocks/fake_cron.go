//+build !release

package mocks

// Fake cron provider
type fakeCron struct {
	callback func()
}

// Adds a new fake job.
func (f *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	f.callback = cmd
	return 1, nil
}

// Removes fake job.
func (f *fakeCron) RemoveFunc(id int) {
	f.callback = nil
}

// Invoke triggers saved cron job.
func (f *fakeCron) Invoke() {
	if f.callback != nil {
		f.callback()
	}
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{}
}
