package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DatabaseMemory   = "memory"
	DatabasePostgres = "postgres"
	CacheMemory      = "memory"
	CacheRedis       = "redis"
	PubSubMemory     = "memory"
	PubSubKafka      = "kafka"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

// BindFlags lets command line flags override the configuration file. It
// must run before the first LoadConfig call.
func BindFlags(flags *pflag.FlagSet) error {
	if f := flags.Lookup("config-dir"); f != nil && f.Value.String() != "" {
		viper.AddConfigPath(f.Value.String())
	}
	if f := flags.Lookup("log-level"); f != nil {
		if err := viper.BindPFlag("general.log_level", f); err != nil {
			return fmt.Errorf("binding log-level: %w", err)
		}
	}
	if f := flags.Lookup("address"); f != nil {
		if err := viper.BindPFlag("http.address", f); err != nil {
			return fmt.Errorf("binding address: %w", err)
		}
	}
	return nil
}

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		viper.SetEnvPrefix("upkeep_server")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.SetConfigName("server")
		viper.AddConfigPath("config")
		viper.AddConfigPath("/config")
		setDefaults()

		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				panic(fmt.Errorf("fatal error config file: %w", err))
			}
		}
		configInstance = AppConfig{
			General: GeneralConfig{
				LogLevel: viper.GetString("general.log_level"),
			},
			HTTP: HTTPConfig{
				Address:        viper.GetString("http.address"),
				AllowedOrigins: viper.GetStringSlice("http.allowed_origins"),
			},
			Database: DatabaseConfig{
				Driver: viper.GetString("database.driver"),
				Name:   viper.GetString("database.name"),
				DSN:    viper.GetString("database.dsn"),
			},
			Cache: CacheConfig{
				Driver:    viper.GetString("cache.driver"),
				DialogTTL: viper.GetDuration("cache.dialog_ttl"),
				ExportTTL: viper.GetDuration("cache.export_ttl"),
			},
			Redis: RedisConfig{
				Addr:     viper.GetString("redis.addr"),
				Password: viper.GetString("redis.password"),
				DB:       viper.GetInt("redis.db"),
			},
			PubSub: PubSubConfig{
				Driver:        viper.GetString("pubsub.driver"),
				ConsumerGroup: viper.GetString("pubsub.consumer_group"),
			},
			Kafka: KafkaConfig{
				Brokers: viper.GetStringSlice("kafka.brokers"),
			},
			Workers: WorkersConfig{
				Interval: viper.GetDuration("workers.interval"),
			},
			Otel: OtelConfig{
				Enabled:  viper.GetBool("otel.enabled"),
				Endpoint: viper.GetString("otel.endpoint"),
			},
		}
	})

	return configInstance
}

func setDefaults() {
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("http.address", ":3000")
	viper.SetDefault("http.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	viper.SetDefault("database.driver", DatabaseMemory)
	viper.SetDefault("database.name", "upkeep")
	viper.SetDefault("cache.driver", CacheMemory)
	viper.SetDefault("cache.dialog_ttl", 30*time.Minute)
	viper.SetDefault("cache.export_ttl", 5*time.Minute)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("pubsub.driver", PubSubMemory)
	viper.SetDefault("pubsub.consumer_group", "upkeep-server")
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("workers.interval", time.Minute)
	viper.SetDefault("otel.endpoint", "localhost:4317")
}

type AppConfig struct {
	General  GeneralConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Redis    RedisConfig
	PubSub   PubSubConfig
	Kafka    KafkaConfig
	Workers  WorkersConfig
	Otel     OtelConfig
}

type GeneralConfig struct {
	LogLevel string
}

type HTTPConfig struct {
	Address        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Driver string
	// Name identifies the in-memory database.
	Name string
	DSN  string
}

type CacheConfig struct {
	Driver    string
	DialogTTL time.Duration
	ExportTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PubSubConfig struct {
	Driver        string
	ConsumerGroup string
}

type KafkaConfig struct {
	Brokers []string
}

type WorkersConfig struct {
	Interval time.Duration
}

type OtelConfig struct {
	Enabled  bool
	Endpoint string
}
