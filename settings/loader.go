// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"io/ioutil"
	"path/filepath"

	"go-home.io/x/ttlock/plugins/common"
	"go-home.io/x/ttlock/providers"
	"go-home.io/x/ttlock/systems/fanout"
	"go-home.io/x/ttlock/systems/logger"
	"go-home.io/x/ttlock/systems/secret"
	"go-home.io/x/ttlock/utils"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	ConfigFolder string            `short:"c" long:"config" description:"Configs location."`
	Secret       map[string]string `short:"s" long:"secret" description:"Secrets provider options."`
}

// Single config file layout.
type rawConfig struct {
	Server *providers.MasterSettings `yaml:"server"`
	Locks  []map[string]interface{}  `yaml:"locks"`
}

// Load system configuration.
func Load(options *StartUpOptions) providers.ISettingsProvider {
	settings := settingsProvider{
		logger:      logger.NewConsoleLogger(),
		fanOut:      fanout.NewFanOut(),
		locksConfig: make([]*providers.RawDevice, 0),
	}

	settings.pluginLogger = settings.logger
	settings.validator = utils.NewValidator(settings.logger)
	settings.cron = utils.NewCron()

	if options.ConfigFolder != "" {
		utils.ConfigDir = options.ConfigFolder
	}

	secretsConstruct := &secret.ConstructSecret{
		Logger:  settings.logger,
		Options: options.Secret,
	}
	settings.secrets = secret.NewSecretProvider(secretsConstruct)

	tplCtor := &constructTemplate{
		Logger:  settings.logger,
		Secrets: settings.secrets,
	}
	templateProvider := newTemplateProvider(tplCtor)

	for _, name := range configFiles(settings.logger) {
		settings.parseFile(name, templateProvider)
	}

	if nil == settings.mSettings {
		settings.mSettings = &providers.MasterSettings{}
	}

	if !settings.validator.Validate(settings.mSettings) {
		settings.logger.Fatal("Server config is invalid", &ErrInvalidServerConfig{})
	}

	if 0 == len(settings.locksConfig) {
		settings.logger.Warn("No locks were configured", common.LogSystemToken, logSystem)
	}

	return &settings
}

// IsValidConfigFileName checks whether config file name is valid.
// Files starting with underscore are internal (e.g. secrets store)
// and are not parsed as configs.
func IsValidConfigFileName(name string) bool {
	name = filepath.Base(name)

	if name[0] == '_' {
		return false
	}

	name = filepath.Ext(name)
	return name == ".yaml" || name == ".yml"
}

// Returns sorted list of config files in the configs directory.
func configFiles(log common.ILoggerProvider) []string {
	dir := utils.GetDefaultConfigsDir()
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		log.Fatal("Failed to read configs directory", err,
			common.LogFileToken, dir, common.LogSystemToken, logSystem)
		return nil
	}

	result := make([]string, 0)
	for _, f := range files {
		if f.IsDir() || !IsValidConfigFileName(f.Name()) {
			continue
		}

		result = append(result, filepath.Join(dir, f.Name()))
	}

	return result
}

// Parses a single config file.
// Templates are processed before yaml is parsed, so secrets and
// environment variables are usable in any field.
func (s *settingsProvider) parseFile(name string, templates ITemplateProvider) {
	raw, err := ioutil.ReadFile(name)
	if err != nil {
		s.logger.Error("Failed to read config file", err,
			common.LogFileToken, name, common.LogSystemToken, logSystem)
		return
	}

	cfg := &rawConfig{}
	err = yaml.Unmarshal(templates.Process(raw), cfg)
	if err != nil {
		s.logger.Error("Failed to parse config file", err,
			common.LogFileToken, name, common.LogSystemToken, logSystem)
		return
	}

	if cfg.Server != nil {
		s.mSettings = cfg.Server
	}

	for _, lock := range cfg.Locks {
		rawLock, err := yaml.Marshal(lock)
		if err != nil {
			s.logger.Error("Failed to prepare lock config", err,
				common.LogFileToken, name, common.LogSystemToken, logSystem)
			continue
		}

		deviceName, ok := lock["name"].(string)
		if !ok || deviceName == "" {
			deviceName = filepath.Base(name)
		}

		s.locksConfig = append(s.locksConfig, &providers.RawDevice{
			Name:      deviceName,
			RawConfig: rawLock,
		})

		s.logger.Debug("Found lock config", common.LogNameToken, deviceName,
			common.LogFileToken, name, common.LogSystemToken, logSystem)
	}
}

// ErrInvalidServerConfig defines a server config validation error.
type ErrInvalidServerConfig struct {
}

// Error formats output.
func (*ErrInvalidServerConfig) Error() string {
	return "server config validation error"
}
