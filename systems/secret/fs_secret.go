// Package secret contains secrets store implementations.
package secret

import (
	"fmt"
	"io/ioutil"
	"sync"

	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/utils"
	"gopkg.in/yaml.v2"
)

const (
	// Config logs system value.
	logSystem = "secret"
	// Name of the file with secrets.
	secretsFileName = "_secrets.yaml"
)

// ErrSecretNotFound defines a missing secret error.
type ErrSecretNotFound struct {
	Name string
}

// Error formats output.
func (e *ErrSecretNotFound) Error() string {
	return fmt.Sprintf("secret %s not found", e.Name)
}

// File system secrets store implementation.
type fsSecret struct {
	sync.Mutex

	location string
	logger   common.ILoggerProvider
	secrets  map[string]string
}

// ConstructSecret has data required for a new secrets provider.
type ConstructSecret struct {
	Logger  common.ILoggerProvider
	Options map[string]string
}

// NewSecretProvider constructs a new secrets store provider.
// Secrets are stored in a plain yaml file under configs directory
// unless a different location is supplied through options.
func NewSecretProvider(ctor *ConstructSecret) common.ISecretProvider {
	location, ok := ctor.Options["location"]
	if !ok {
		location = fmt.Sprintf("%s/%s", utils.GetDefaultConfigsDir(), secretsFileName)
	}

	s := &fsSecret{
		location: location,
		logger:   ctor.Logger,
		secrets:  make(map[string]string),
	}

	s.load()
	return s
}

// Get returns secret value or throws an error if it wasn't found.
func (s *fsSecret) Get(name string) (string, error) {
	s.Lock()
	defer s.Unlock()

	value, ok := s.secrets[name]
	if !ok {
		s.logger.Warn("Requested secret is not found",
			common.LogSecretToken, name, common.LogSystemToken, logSystem)
		return "", &ErrSecretNotFound{Name: name}
	}

	s.logger.Debug("Requesting secret", common.LogSecretToken, name,
		common.LogSystemToken, logSystem)
	return value, nil
}

// Set adds a new secret and persists the store.
func (s *fsSecret) Set(name string, data string) error {
	s.Lock()
	defer s.Unlock()

	s.secrets[name] = data
	raw, err := yaml.Marshal(s.secrets)
	if err != nil {
		s.logger.Error("Failed to marshal secrets store", err, common.LogSystemToken, logSystem)
		return err
	}

	err = ioutil.WriteFile(s.location, raw, 0600)
	if err != nil {
		s.logger.Error("Failed to persist secrets store", err,
			common.LogFileToken, s.location, common.LogSystemToken, logSystem)
		return err
	}

	return nil
}

// Loads secrets from the file, if it exists.
// Missing file is not an error since store could be empty.
func (s *fsSecret) load() {
	raw, err := ioutil.ReadFile(s.location)
	if err != nil {
		s.logger.Debug("Secrets file is not found, starting with an empty store",
			common.LogFileToken, s.location, common.LogSystemToken, logSystem)
		return
	}

	err = yaml.Unmarshal(raw, &s.secrets)
	if err != nil {
		s.logger.Error("Failed to parse secrets file", err,
			common.LogFileToken, s.location, common.LogSystemToken, logSystem)
	}
}
