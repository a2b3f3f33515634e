package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" or "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		JwtSecret     string `json:"jwt_secret"`
		TokenTTLHours int    `json:"token_ttl_hours"`
	} `json:"security"`

	Watson struct {
		ApiKey       string `json:"api_key"`
		URL          string `json:"url"`
		Version      string `json:"version"`
		KeywordLimit int    `json:"keyword_limit"`
		EntityLimit  int    `json:"entity_limit"`
	} `json:"watson"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.TokenTTLHours <= 0 {
		c.Security.TokenTTLHours = 24
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.Watson.Version == "" {
		c.Watson.Version = "2022-04-07"
	}
	if c.Watson.KeywordLimit <= 0 {
		c.Watson.KeywordLimit = 3
	}
	if c.Watson.EntityLimit <= 0 {
		c.Watson.EntityLimit = 3
	}

	return c
}
