package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	JWT         JWTConfig         `yaml:"jwt"`
	Security    SecurityConfig    `yaml:"security"`
	DefaultUser DefaultUserConfig `yaml:"default_user"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn string `yaml:"expires_in"`
	Issuer    string `yaml:"issuer"`
}

type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type DefaultUserConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
}

var Global *Config

// Load reads the configuration file and environment variables
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables
	if jwtSecret := os.Getenv("ACCPANEL_JWT_SECRET"); jwtSecret != "" {
		cfg.JWT.Secret = jwtSecret
	}

	if dbType := os.Getenv("ACCPANEL_DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
	}

	if dbPath := os.Getenv("ACCPANEL_DB_PATH"); dbPath != "" {
		cfg.Database.SQLite.Path = dbPath
	}

	if mysqlHost := os.Getenv("ACCPANEL_MYSQL_HOST"); mysqlHost != "" {
		cfg.Database.MySQL.Host = mysqlHost
	}

	if mysqlUser := os.Getenv("ACCPANEL_MYSQL_USER"); mysqlUser != "" {
		cfg.Database.MySQL.Username = mysqlUser
	}

	if mysqlPass := os.Getenv("ACCPANEL_MYSQL_PASSWORD"); mysqlPass != "" {
		cfg.Database.MySQL.Password = mysqlPass
	}

	if pgHost := os.Getenv("ACCPANEL_POSTGRES_HOST"); pgHost != "" {
		cfg.Database.Postgres.Host = pgHost
	}

	if pgUser := os.Getenv("ACCPANEL_POSTGRES_USER"); pgUser != "" {
		cfg.Database.Postgres.Username = pgUser
	}

	if pgPass := os.Getenv("ACCPANEL_POSTGRES_PASSWORD"); pgPass != "" {
		cfg.Database.Postgres.Password = pgPass
	}

	if adminPass := os.Getenv("ACCPANEL_ADMIN_PASSWORD"); adminPass != "" {
		cfg.DefaultUser.Password = adminPass
	}

	// Ensure data directory exists for SQLite
	if cfg.Database.Type == "sqlite" {
		dataDir := filepath.Dir(cfg.Database.SQLite.Path)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if cfg.Database.Type == "mysql" {
		if cfg.Database.MySQL.Username == "" {
			return nil, fmt.Errorf("MySQL username is required")
		}
		if cfg.Database.MySQL.Database == "" {
			return nil, fmt.Errorf("MySQL database name is required")
		}
	}

	if cfg.Database.Type == "postgres" {
		if cfg.Database.Postgres.Username == "" {
			return nil, fmt.Errorf("Postgres username is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return nil, fmt.Errorf("Postgres database name is required")
		}
	}

	if cfg.Security.BcryptCost == 0 {
		cfg.Security.BcryptCost = 10
	}

	if cfg.DefaultUser.Username == "" {
		cfg.DefaultUser.Username = "admin"
	}

	Global = &cfg
	return &cfg, nil
}
