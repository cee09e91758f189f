package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env (or the given files) into the process environment.
// A missing file is ignored; variables can be set by other means.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// environ returns the process environment as a map, skipping empty values so
// they do not shadow defaults.
func environ() map[string]interface{} {
	env := make(map[string]interface{})
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		env[k] = v
	}
	return env
}
