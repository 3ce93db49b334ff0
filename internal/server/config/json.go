package config

import (
	"encoding/json"
	"os"

	"github.com/Euphysics/ziphonix/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	DatabaseDSN      string `json:"database_dsn"`
	EncryptionKey    string `json:"encryption_key"`
	PasswordSalt     string `json:"password_salt"`
}

// parseJson loads configuration values from the JSON file given via the
// -c/-config flags into the provided Config. When no file is given, nothing
// is loaded. An unreadable or invalid file panics, which is acceptable this
// early in startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.EncryptionKey != "" {
		config.EncryptionKey = c.EncryptionKey
	}
	if c.PasswordSalt != "" {
		config.PasswordSalt = c.PasswordSalt
	}
}
