package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Ticketing TicketingConfig `yaml:"ticketing"`
	Leasing   LeasingConfig   `yaml:"leasing"`
	Worker    WorkerConfig    `yaml:"worker"`
}

type AppConfig struct {
	Env string `yaml:"env"`
}

type HTTPConfig struct {
	Address         string  `yaml:"address"`
	SwaggerDir      string  `yaml:"swagger_dir"`
	PublicRPS       float64 `yaml:"public_rps"`
	PublicBurst     int     `yaml:"public_burst"`
	ShutdownTimeout int     `yaml:"shutdown_timeout_seconds"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	Migrate  bool   `yaml:"migrate"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// MigrateURL is the pgx5:// form expected by golang-migrate.
func (d DatabaseConfig) MigrateURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	LeaseTopic         string   `yaml:"lease_topic"`
	TicketTopic        string   `yaml:"ticket_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type TicketingConfig struct {
	SeatLockTTLSeconds int `yaml:"seat_lock_ttl_seconds"`
	FlightsCacheTTL    int `yaml:"flights_cache_ttl_seconds"`
	SeatAttempts       int `yaml:"seat_attempts"`
}

type LeasingConfig struct {
	SettingsCacheTTL int `yaml:"settings_cache_ttl_seconds"`
	PageCacheTTL     int `yaml:"page_cache_ttl_seconds"`
}

type WorkerConfig struct {
	AutorenewSchedule string `yaml:"autorenew_schedule"`
	ReminderSchedule  string `yaml:"reminder_schedule"`
	// MetricsAddress is where the worker serves /metrics and /healthz.
	MetricsAddress string `yaml:"metrics_address"`
}

// LoadConfig reads the YAML file at path. Variables from a .env file next to the
// process are loaded first so that secrets can stay out of the YAML.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.App.Env = v
	}
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.PublicRPS == 0 {
		c.HTTP.PublicRPS = 5
	}
	if c.HTTP.PublicBurst == 0 {
		c.HTTP.PublicBurst = 10
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 5
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Ticketing.SeatLockTTLSeconds == 0 {
		c.Ticketing.SeatLockTTLSeconds = 30
	}
	if c.Ticketing.FlightsCacheTTL == 0 {
		c.Ticketing.FlightsCacheTTL = 60
	}
	if c.Ticketing.SeatAttempts == 0 {
		c.Ticketing.SeatAttempts = 10
	}
	if c.Leasing.SettingsCacheTTL == 0 {
		c.Leasing.SettingsCacheTTL = 300
	}
	if c.Leasing.PageCacheTTL == 0 {
		c.Leasing.PageCacheTTL = 120
	}
	if c.Worker.AutorenewSchedule == "" {
		c.Worker.AutorenewSchedule = "0 1 * * *"
	}
	if c.Worker.ReminderSchedule == "" {
		c.Worker.ReminderSchedule = "0 9 1 * *"
	}
	if c.Worker.MetricsAddress == "" {
		c.Worker.MetricsAddress = ":9091"
	}
}
