package ttlock

// Settings has data required for a new TTLock device.
// Credentials are immutable after the plugin is initialized.
type Settings struct {
	Domain       string `yaml:"domain" default:"euapi.ttlock.com"`
	Name         string `yaml:"name" default:"TTLock"`
	LockID       string `yaml:"lockId" validate:"required"`
	ClientID     string `yaml:"clientId" validate:"required"`
	ClientSecret string `yaml:"clientSecret" validate:"required"`
	Username     string `yaml:"username" validate:"required"`
	Password     string `yaml:"password" validate:"required"`
}

// Validate settings.
func (s *Settings) Validate() error {
	return nil
}
