package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/subosito/gotenv"
)

// LoadDotEnv loads variables from the given .env files without overriding
// the ones already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := gotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load %s", path)
		}
	}

	return nil
}
