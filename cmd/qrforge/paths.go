package main

import (
	"os"
	"path/filepath"
)

// homeEnv overrides the state directory, normally ~/.qrforge.
const homeEnv = "QRFORGE_HOME"

func appDir() (string, error) {
	if dir := os.Getenv(homeEnv); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".qrforge"), nil
}

func defaultConfigPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.yaml"), nil
}

func defaultPrefsPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "prefs.json"), nil
}

func defaultLogPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "qrforge.log"), nil
}
