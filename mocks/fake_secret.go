//+build !release

package mocks

// Fake secret store
type fakeSecret struct {
	secrets map[string]string
}

// Returns secret.
func (f *fakeSecret) Get(name string) (string, error) {
	if v, ok := f.secrets[name]; ok {
		return v, nil
	}

	return "", &ErrFakeNotFound{}
}

// Sets secret.
func (f *fakeSecret) Set(name string, data string) error {
	f.secrets[name] = data
	return nil
}

// ErrFakeNotFound defines a missing fake record error.
type ErrFakeNotFound struct {
}

// Error formats output.
func (*ErrFakeNotFound) Error() string {
	return "not found"
}

// FakeNewSecretStore creates a fake secrets store.
func FakeNewSecretStore(secrets map[string]string) *fakeSecret {
	if nil == secrets {
		secrets = make(map[string]string)
	}

	return &fakeSecret{secrets: secrets}
}
