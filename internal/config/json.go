package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/jfmartinez/credvault/internal/flagx"
	"github.com/jfmartinez/credvault/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON config
// files; after unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	DatabasePath string         `json:"database_path"`
	HashTimeout  timex.Duration `json:"hash_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabasePath = c.DatabasePath
	config.HashTimeout = time.Duration(c.HashTimeout.Duration)
}
