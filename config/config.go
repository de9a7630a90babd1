package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database   DatabaseConfigs   `toml:"database"`
	ApiServer  APIServerConfigs  `toml:"api_server"`
	Auth       AuthConfigs       `toml:"auth"`
	Redis      RedisConfigs      `toml:"redis"`
	Kafka      KafkaConfigs      `toml:"kafka"`
	Prometheus PrometheusConfigs `toml:"prometheus"`
	StarPath   StarPathConfigs   `toml:"star_path"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs
	MaxLimit     int      `toml:"max_limit"`
	DefaultLimit int      `toml:"default_limit"`
	AllowOrigins []string `toml:"allow_origins"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
	AdminIDs    []string     `toml:"admin_ids"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr     string `toml:"addr"`
	ClientID string `toml:"client_id"`
	Topic    string `toml:"topic"`
}

type PrometheusConfigs struct {
	ServerConfigs
	Enable bool `toml:"enable"`
}

type StarPathConfigs struct {
	// CatalogPath points to the TOML achievement catalog. The built-in catalog
	// is used when it is empty.
	CatalogPath string `toml:"catalog_path"`

	CheckInBasePoints      int64         `toml:"check_in_base_points"`
	VideoScoreFloor        int64         `toml:"video_score_floor"`
	StreakThreshold        int           `toml:"streak_threshold"`
	SnapshotTTL            time.Duration `toml:"snapshot_ttl"`
	SnowflakeNode          int64         `toml:"snowflake_node"`
	LeaderboardSyncPeriod  time.Duration `toml:"leaderboard_sync_period"`
	LeaderboardSyncTimeout time.Duration `toml:"leaderboard_sync_timeout"`
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "starpath",
			User:     "mysql",
			LogLevel: "error",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{Port: "8080"},
			MaxLimit:      50,
			DefaultLimit:  10,
			AllowOrigins:  []string{"*"},
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{Name: "access_token", Expiration: 5 * time.Minute},
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		Kafka: KafkaConfigs{Addr: "localhost:9092", ClientID: "starpath", Topic: "starpath"},
		Prometheus: PrometheusConfigs{
			ServerConfigs: ServerConfigs{Port: "9090"},
			Enable:        true,
		},
		StarPath: StarPathConfigs{
			CheckInBasePoints:      50,
			VideoScoreFloor:        40,
			StreakThreshold:        1,
			SnapshotTTL:            time.Minute,
			SnowflakeNode:          1,
			LeaderboardSyncPeriod:  time.Hour,
			LeaderboardSyncTimeout: 5 * time.Minute,
		},
	}
}

// Load reads the TOML file at path on top of the default configurations, then
// applies environment overrides. An empty path only applies the overrides.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.Database.Host = getEnv("MYSQL_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("MYSQL_PORT", cfg.Database.Port)
	cfg.Database.Database = getEnv("MYSQL_DATABASE", cfg.Database.Database)
	cfg.Database.User = getEnv("MYSQL_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("MYSQL_PASSWORD", cfg.Database.Password)
	cfg.ApiServer.Port = getEnv("API_PORT", cfg.ApiServer.Port)
	cfg.Auth.TokenSecret = getEnv("TOKEN_SECRET", cfg.Auth.TokenSecret)
	cfg.Redis.Addr = getEnv("REDIS_ADDRESS", cfg.Redis.Addr)
	cfg.Kafka.Addr = getEnv("KAFKA_ADDRESS", cfg.Kafka.Addr)

	if cfg.StarPath.StreakThreshold < 1 {
		return Configs{}, fmt.Errorf("streak threshold must be at least 1, got %d", cfg.StarPath.StreakThreshold)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
