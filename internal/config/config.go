package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Google     GoogleConfig     `yaml:"google"`
	Auth       AuthConfig       `yaml:"auth"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	CORS       CORSConfig       `yaml:"cors"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

// JWTConfig configures the signed access tokens.
type JWTConfig struct {
	Secret        string `yaml:"secret"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
	ExpireMinutes int    `yaml:"expire_minutes"`
}

// GoogleConfig configures ID-token verification against the Google OIDC issuer.
type GoogleConfig struct {
	IssuerURL string `yaml:"issuer_url"`
	ClientID  string `yaml:"client_id"`
}

// AuthConfig configures the refresh-token lifecycle.
type AuthConfig struct {
	RefreshTokenDays  int `yaml:"refresh_token_days"` // absolute refresh token lifetime
	RetentionDays     int `yaml:"retention_days"`     // revoked tokens older than this are purged
	SweepIntervalDays int `yaml:"sweep_interval_days"`

	// BootstrapAdminEmail is provisioned as an active admin account on first
	// start. Accounts are never created on the login path, so without this
	// (or an operator inserting rows) nobody can sign in.
	BootstrapAdminEmail string `yaml:"bootstrap_admin_email"`

	// LoginRPS / LoginBurst rate-limit the login endpoint per client IP.
	LoginRPS   float64 `yaml:"login_rps"`
	LoginBurst int     `yaml:"login_burst"`
}

// SchedulingConfig configures the planning-month calendar window.
type SchedulingConfig struct {
	MonthsAhead int    `yaml:"months_ahead"`
	Country     string `yaml:"country"` // holiday calendar: US, GB, DE, FR, NO
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		fileCfg := *DefaultConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "shiftwise.db",
		},
		JWT: JWTConfig{
			Secret:        "shiftwise-secret-key-change-in-production",
			Issuer:        "shiftwise",
			Audience:      "shiftwise-web",
			ExpireMinutes: 15,
		},
		Google: GoogleConfig{
			IssuerURL: "https://accounts.google.com",
		},
		Auth: AuthConfig{
			RefreshTokenDays:  7,
			RetentionDays:     30,
			SweepIntervalDays: 7,
			LoginRPS:          2,
			LoginBurst:        5,
		},
		Scheduling: SchedulingConfig{
			MonthsAhead: 3,
			Country:     "NO",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:5173"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		c.JWT.Issuer = issuer
	}
	if audience := os.Getenv("JWT_AUDIENCE"); audience != "" {
		c.JWT.Audience = audience
	}
	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" {
		c.Google.ClientID = clientID
	}
	if issuerURL := os.Getenv("GOOGLE_ISSUER_URL"); issuerURL != "" {
		c.Google.IssuerURL = issuerURL
	}
	if email := os.Getenv("BOOTSTRAP_ADMIN_EMAIL"); email != "" {
		c.Auth.BootstrapAdminEmail = email
	}
	if days := os.Getenv("AUTH_REFRESH_TOKEN_DAYS"); days != "" {
		if d, err := strconv.Atoi(days); err == nil && d > 0 {
			c.Auth.RefreshTokenDays = d
		}
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORS.AllowOrigins = strings.Split(origins, ",")
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
