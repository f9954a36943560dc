package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// DefaultYAML seeds a fresh data dir when no packaged default exists.
const DefaultYAML = `app:
  port: 38472
  data_dir: ""

sync:
  keywords:
    - golang
    - backend
    - devops
  delay_min_ms: 1000
  delay_max_ms: 3000
  poll_enabled: false
  poll_interval_seconds: 3600

sources:
  adzuna:
    country: us
    results_per_page: 20
  rate_per_host: 1.0
  rate_burst: 2
`

// EnsureUserConfig makes sure <dataDir>/config.yml exists, copying the
// packaged default when present and writing the built-in one otherwise.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := os.WriteFile(userPath, []byte(DefaultYAML), 0o644); werr != nil {
				return "", werr
			}
			return userPath, nil
		}
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
