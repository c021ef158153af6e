package utils

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// TimeNow returns epoch UTC.
func TimeNow() int64 {
	return time.Now().UTC().Unix()
}

// TimeNowMs returns epoch UTC in milliseconds.
// TTLock cloud expects this resolution in every API call.
func TimeNowMs() int64 {
	return time.Now().UTC().UnixNano() / int64(time.Millisecond)
}

// Separators and shell-unfriendly characters replaced in device names.
var nameReplacer = strings.NewReplacer("%", "_",
	"/", "_",
	"\\", "_",
	":", "_",
	";", "_",
	".", "_",
	"$", "_",
	"-", "_",
	" ", "_")

// NormalizeDeviceName lower-cases the name and strips characters
// which don't survive URLs and config references.
func NormalizeDeviceName(raw string) string {
	return nameReplacer.Replace(strings.ToLower(raw))
}

// GetCurrentWorkingDir returns application working directory.
func GetCurrentWorkingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("Failed to get current working dir")
	}

	return cwd
}

// GetDefaultConfigsDir returns default config directory which is cwd/configs.
func GetDefaultConfigsDir() string {
	if ConfigDir != "" {
		return ConfigDir
	}

	return fmt.Sprintf("%s/configs", GetCurrentWorkingDir())
}

// ConfigDir allows to re-write default config directory.
var ConfigDir = ""
