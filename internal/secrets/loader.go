// Package secrets resolves credential material for external services. The
// only secret jobfinder needs today is the Gemini API key, which usually
// arrives as a file path via GEMINI_API_KEY_FILE.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source names a secret and where to read it from. File wins over Value, so
// a key placed in the config file can be overridden by a file mount without
// editing the config.
type Source struct {
	// Name appears in error messages so a missing key points at what to set.
	Name  string
	Value string
	File  string
}

// Load resolves the secret and trims surrounding whitespace; key files
// routinely end with a newline. An error names the secret when neither File
// nor Value yields a usable value.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	value := src.Value
	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from %q: %w", name, file, err)
		}
		value = string(data)
	}

	secret := strings.TrimSpace(value)
	if secret != "" {
		return secret, nil
	}

	if file != "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}
	return "", fmt.Errorf("%s is not configured", name)
}
