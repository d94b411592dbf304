package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const DevSecret = "panda-dev-secret"

type Config struct {
	Env  string
	HTTP struct {
		Host string
		Port int
	}
	Pod struct {
		BaseURL    string
		TimeoutSec int
	}
	JWT struct {
		Secret string
		Issuer string
	}
}

// Load reads the bff config file (optional when path is empty) with
// PANDA_*-prefixed environment overrides. The BFF holds the shared
// secret only to verify; it never signs.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PANDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("bff.host", "127.0.0.1")
	v.SetDefault("bff.port", 9400)
	v.SetDefault("bff.pod.base_url", "http://127.0.0.1:9300")
	v.SetDefault("bff.pod.timeout_sec", 10)
	v.SetDefault("bff.jwt.issuer", "panda-gate")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{Env: v.GetString("env")}
	cfg.HTTP.Host = v.GetString("bff.host")
	cfg.HTTP.Port = v.GetInt("bff.port")
	cfg.Pod.BaseURL = v.GetString("bff.pod.base_url")
	cfg.Pod.TimeoutSec = v.GetInt("bff.pod.timeout_sec")
	cfg.JWT.Secret = v.GetString("bff.jwt.secret")
	cfg.JWT.Issuer = v.GetString("bff.jwt.issuer")

	if cfg.JWT.Secret == "" {
		if cfg.Production() {
			return nil, fmt.Errorf("bff.jwt.secret is required in production")
		}
		log.Warn().Msg("jwt secret not configured, using development default")
		cfg.JWT.Secret = DevSecret
	}
	return cfg, nil
}

func (c *Config) Production() bool { return c.Env == "production" }
