package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bigredeye/forfeits/pkg/conf"
)

type Config struct {
	Fpl struct {
		BaseURL   string
		UserAgent string
		Timeout   time.Duration
		CacheTTL  time.Duration
	}

	League struct {
		DefaultID int
	}

	Endpoints struct {
		Api struct {
			Entries    string
			Standings  string
			Chronology string
			Override   string
		}
	}

	Server struct {
		ListenAddress string
		Cookies       struct {
			AuthenticationKey string
			EncryptionKey     string
		}
	}

	DataBase struct {
		Host string
		Port uint16
		User string
		Pass string
		Name string
	}

	Api struct {
		Tokens []string
	}
}

func (c *Config) FillDefaults() {
	if c.Fpl.BaseURL == "" {
		c.Fpl.BaseURL = "https://fantasy.premierleague.com/api"
	}
	if c.Fpl.UserAgent == "" {
		c.Fpl.UserAgent = "Mozilla/5.0 (compatible; FPL-Forfeits/1.3)"
	}
	if c.Fpl.Timeout == 0 {
		c.Fpl.Timeout = time.Second * 15
	}
	if c.Fpl.CacheTTL == 0 {
		c.Fpl.CacheTTL = time.Minute * 5
	}
	if c.Endpoints.Api.Entries == "" {
		c.Endpoints.Api.Entries = "/api/entries"
	}
	if c.Endpoints.Api.Standings == "" {
		c.Endpoints.Api.Standings = "/api/standings"
	}
	if c.Endpoints.Api.Chronology == "" {
		c.Endpoints.Api.Chronology = "/api/chronology"
	}
	if c.Endpoints.Api.Override == "" {
		c.Endpoints.Api.Override = "/api/override"
	}
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8080"
	}
}

func ParseConfig() (*Config, error) {
	config := &Config{}
	if err := conf.ParseConfig(config, conf.EnvPrefix("FORFEITS")); err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	config.FillDefaults()
	return config, nil
}
