package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env            string         // Env is the current environment: local, development, production.
	Postgres       PostgresConfig // Postgres holds the database configuration
	HTTP           HTTPConfig     // HTTP holds the records API listener configuration
	MonitoringPort int            // MonitoringPort serves /metrics and /healthz
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Dbname   string // Dbname is the name of the database.
}

// HTTPConfig struct holds the records API server settings.
type HTTPConfig struct {
	Address      string        // Address is the listen address, e.g. `:5000`
	BasePath     string        // BasePath prefixes every API route, e.g. `/api`
	ReadTimeout  time.Duration // ReadTimeout bounds reading a whole request
	WriteTimeout time.Duration // WriteTimeout bounds writing a response
}

// bindings maps config keys to the environment variables that override them.
var bindings = map[string]string{
	"env":                "STAFFBOOK_ENV",
	"postgres.host":      "DB_HOST",
	"postgres.port":      "DB_PORT",
	"postgres.user":      "DB_USERNAME",
	"postgres.password":  "DB_PASSWORD",
	"postgres.db_name":   "DB_NAME",
	"http.address":       "HTTP_ADDRESS",
	"http.base_path":     "HTTP_BASE_PATH",
	"http.read_timeout":  "HTTP_READ_TIMEOUT",
	"http.write_timeout": "HTTP_WRITE_TIMEOUT",
	"monitoring.port":    "MONITORING_PORT",
}

// MustLoad reads an optional .env file, an optional YAML file at CONFIG_PATH and the environment,
// in increasing order of precedence. It panics when a value cannot be parsed.
func MustLoad() *Config {
	// a missing .env is fine, the variables may come from the real environment
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetDefault("env", "local")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("http.address", ":5000")
	vpr.SetDefault("http.base_path", "/api")
	vpr.SetDefault("http.read_timeout", "10s")
	vpr.SetDefault("http.write_timeout", "10s")
	vpr.SetDefault("monitoring.port", "8080")

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		vpr.SetConfigFile(configPath)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	for key, env := range bindings {
		if err := vpr.BindEnv(key, env); err != nil {
			panic("failed to bind env " + env + ": " + err.Error())
		}
	}

	readTimeout, err := time.ParseDuration(vpr.GetString("http.read_timeout"))
	if err != nil {
		panic("failed to parse http read timeout from configuration")
	}
	writeTimeout, err := time.ParseDuration(vpr.GetString("http.write_timeout"))
	if err != nil {
		panic("failed to parse http write timeout from configuration")
	}
	monitoringPort, err := strconv.Atoi(vpr.GetString("monitoring.port"))
	if err != nil {
		panic("failed to parse monitoring port from configuration")
	}

	return &Config{
		Env: vpr.GetString("env"),
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		HTTP: HTTPConfig{
			Address:      vpr.GetString("http.address"),
			BasePath:     normalizeBasePath(vpr.GetString("http.base_path")),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		MonitoringPort: monitoringPort,
	}
}

// normalizeBasePath turns "api/", "/api/" and "/api" into "/api". An empty or "/" path mounts at the root.
func normalizeBasePath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return ""
	}

	return "/" + path
}
