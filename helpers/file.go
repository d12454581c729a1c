package helpers

import (
	"os"
)

// used by Open, so that tests running from a package folder can reach root files
var rootEnv = GetenvOr("MOTION_TEST_ROOT", ".") + "/"

func Open(name string) (*os.File, error) {
	return os.Open(rootEnv + name)
}

func EnsureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0775)
	}
	return nil
}
