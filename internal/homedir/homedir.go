package homedir

import (
	"fmt"
	"os"
)

func Get() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("homedir: could not get home dir: %w", err)
	}
	return dir, nil
}

func Config() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("homedir: could not get config dir: %w", err)
	}
	return dir, nil
}
