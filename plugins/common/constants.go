package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogNameToken describes name log entry.
	LogNameToken = "name"
	// LogDeviceTypeToken describes device type log entry.
	LogDeviceTypeToken = "device_type"
	// LogDeviceNameToken describes device name log entry.
	LogDeviceNameToken = "device_name"
	// LogDeviceCommandToken describes device command log entry.
	LogDeviceCommandToken = "device_cmd"
	// LogDevicePropertyToken describes device property log entry.
	LogDevicePropertyToken = "device_prop"
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogSecretToken describes secret log entry.
	LogSecretToken = "secret"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
	// LogLockIDToken describes vendor lock ID log entry.
	LogLockIDToken = "lock_id"
)
