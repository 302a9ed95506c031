package config

import (
	"os"
	"strings"

	"hermes/pkg/errors"
)

// ResolveAPIKey returns the API key to use for chat providers.
// A key file takes precedence over the inline value; the file contents
// are trimmed of surrounding whitespace.
func ResolveAPIKey(keyFile string, inline string) (string, error) {
	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read API key file %s", keyFile)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", errors.Wrapf(errors.ErrMissingAPIKey, "key file %s is empty", keyFile)
		}
		return key, nil
	}

	if inline != "" {
		return inline, nil
	}

	return "", errors.ErrMissingAPIKey
}
