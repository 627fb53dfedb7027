package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"fleetdelivery/internal/adapters/out/lock"
	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/domain/model/geo"
	"fleetdelivery/internal/jobs"
	"fleetdelivery/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FLEET_DB_HOST.
const EnvPrefix = "FLEET"

type Config struct {
	HTTP   HTTPConfig   `mapstructure:"http"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Queue  QueueConfig  `mapstructure:"queue"`
	Lock   LockConfig   `mapstructure:"lock"`
	Geo    GeoConfig    `mapstructure:"geo"`
	Orders OrdersConfig `mapstructure:"orders"`
	Jobs   JobsConfig   `mapstructure:"jobs"`
}

type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig selects console output in debug mode and a rotated JSON file
// otherwise.
type LogConfig struct {
	Mode       string `mapstructure:"mode"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Mode:       c.Mode,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

type DBConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SslMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN renders the lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

// RedisConfig backs the distributed lock and the reference checker. When
// disabled the service falls back to in-process locks and accepts every
// reference.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig is the asynq connection status events are enqueued to. When
// disabled events are only logged.
type QueueConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Name     string `mapstructure:"name"`
}

type LockConfig struct {
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
	Lease       time.Duration `mapstructure:"lease"`
}

type GeoConfig struct {
	EarthRadiusKm   float64 `mapstructure:"earth_radius_km"`
	DefaultSpeedKmh float64 `mapstructure:"default_speed_kmh"`
}

func (c GeoConfig) Params() geo.Params {
	return geo.Params{EarthRadiusKm: c.EarthRadiusKm, DefaultSpeedKmh: c.DefaultSpeedKmh}.Normalized()
}

type OrdersConfig struct {
	CreateAttempts int `mapstructure:"create_attempts"`
}

type JobsConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	ActiveOrdersReport string `mapstructure:"active_orders_report"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.shutdown_timeout", 15*time.Second)
	v.SetDefault("log.mode", "release")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "fleetdelivery.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "delivery")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "fleet")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.addr", "127.0.0.1:6379")
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.name", "default")
	v.SetDefault("lock.wait_timeout", lock.DefaultWaitTimeout)
	v.SetDefault("lock.lease", 30*time.Second)
	v.SetDefault("geo.earth_radius_km", geo.DefaultEarthRadiusKm)
	v.SetDefault("geo.default_speed_kmh", geo.DefaultSpeedKmh)
	v.SetDefault("orders.create_attempts", commands.DefaultCreateAttempts)
	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.active_orders_report", jobs.DefaultActiveOrdersReportSpec)
}

// LoadConfig reads, in increasing precedence: defaults, the optional YAML
// file at path, variables from envFile (when it exists) and the process
// environment.
func LoadConfig(path, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.HTTP.Port) == "" {
		err = errors.Join(err, errors.New("http.port is required"))
	}
	if strings.TrimSpace(c.DB.Host) == "" {
		err = errors.Join(err, errors.New("db.host is required"))
	}
	if strings.TrimSpace(c.DB.Name) == "" {
		err = errors.Join(err, errors.New("db.name is required"))
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		err = errors.Join(err, errors.New("redis.addr is required when redis is enabled"))
	}
	if c.Queue.Enabled && strings.TrimSpace(c.Queue.Addr) == "" {
		err = errors.Join(err, errors.New("queue.addr is required when the queue is enabled"))
	}
	if c.Lock.WaitTimeout <= 0 {
		err = errors.Join(err, errors.New("lock.wait_timeout must be positive"))
	}
	return err
}
