package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DevSecret is the signing secret used when none is configured outside
// production. Falling back is allowed there but always logged.
const DevSecret = "panda-dev-secret"

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string // "mysql" or "sqlite"
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	Path   string // sqlite file path
}

type Config struct {
	Env   string
	HTTP  HTTP
	DB    DB
	Redis struct {
		Addr       string
		RoleTTLSec int
	}
	JWT struct {
		Secret  string
		Issuer  string
		ExpDays int
	}
	Admin struct {
		Email    string
		Password string
	}
}

// Load reads the pod config file (optional when path is empty) with
// PANDA_*-prefixed environment overrides on top.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PANDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("pod.host", "127.0.0.1")
	v.SetDefault("pod.port", 9300)
	v.SetDefault("pod.db.driver", "sqlite")
	v.SetDefault("pod.db.host", "127.0.0.1")
	v.SetDefault("pod.db.port", 3306)
	v.SetDefault("pod.db.user", "root")
	v.SetDefault("pod.db.pass", "")
	v.SetDefault("pod.db.name", "panda_gate")
	v.SetDefault("pod.db.path", "panda_gate.db")
	v.SetDefault("pod.redis.addr", "")
	v.SetDefault("pod.redis.role_ttl_sec", 30)
	v.SetDefault("pod.jwt.issuer", "panda-gate")
	v.SetDefault("pod.jwt.exp_days", 7)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Env:  v.GetString("env"),
		HTTP: HTTP{Host: v.GetString("pod.host"), Port: v.GetInt("pod.port")},
		DB: DB{
			Driver: v.GetString("pod.db.driver"),
			Host:   v.GetString("pod.db.host"),
			Port:   v.GetInt("pod.db.port"),
			User:   v.GetString("pod.db.user"),
			Pass:   v.GetString("pod.db.pass"),
			Name:   v.GetString("pod.db.name"),
			Path:   v.GetString("pod.db.path"),
		},
	}
	cfg.Redis.Addr = v.GetString("pod.redis.addr")
	cfg.Redis.RoleTTLSec = v.GetInt("pod.redis.role_ttl_sec")
	cfg.JWT.Secret = v.GetString("pod.jwt.secret")
	cfg.JWT.Issuer = v.GetString("pod.jwt.issuer")
	cfg.JWT.ExpDays = v.GetInt("pod.jwt.exp_days")
	cfg.Admin.Email = v.GetString("pod.admin.email")
	cfg.Admin.Password = v.GetString("pod.admin.password")

	if cfg.JWT.Secret == "" {
		if cfg.Production() {
			return nil, fmt.Errorf("pod.jwt.secret is required in production")
		}
		log.Warn().Msg("jwt secret not configured, using development default")
		cfg.JWT.Secret = DevSecret
	}
	return cfg, nil
}

func (c *Config) Production() bool { return c.Env == "production" }
