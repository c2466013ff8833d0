package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dncoder14/crimewatch-ai/internal/crimedata"
)

// Config: корневая структура конфигурации сервиса.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Redis       RedisConfig       `mapstructure:"redis"`
	CrimeData   CrimeDataConfig   `mapstructure:"crimedata"`
	Reliability ReliabilityConfig `mapstructure:"reliability"`
	Logger      LoggerConfig      `mapstructure:"logger"`
}

// ServerConfig описывает HTTP API, gRPC health и порт метрик.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	GRPCPort     int           `mapstructure:"grpc_port"`
	MetricsPort  int           `mapstructure:"metrics_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig: L2 кэш прогнозов. Пустой Addr отключает кэш.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// CrimeDataConfig: параметры генератора и имитации прогноза.
// Центр карты берется как есть, (0,0) тоже валидная точка. Лос-Анджелес
// подставляют дефолты LoadConfig, а не сервис.
type CrimeDataConfig struct {
	DefaultCount      int           `mapstructure:"default_count"`
	CenterLat         float64       `mapstructure:"center_lat"`
	CenterLng         float64       `mapstructure:"center_lng"`
	PredictionDelay   time.Duration `mapstructure:"prediction_delay"`
	PredictionTimeout time.Duration `mapstructure:"prediction_timeout"` // 0: без таймаута
}

// ReliabilityConfig настраивает обвязку вокруг провайдера прогнозов.
type ReliabilityConfig struct {
	RateLimit     float64       `mapstructure:"rate_limit"` // запросов в секунду
	RateBurst     int           `mapstructure:"rate_burst"`
	RetryAttempts uint          `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	CallTimeout   time.Duration `mapstructure:"call_timeout"`

	// Circuit Breaker
	CBMaxRequests uint32        `mapstructure:"cb_max_requests"`
	CBInterval    time.Duration `mapstructure:"cb_interval"`
	CBTimeout     time.Duration `mapstructure:"cb_timeout"`
	CBMaxFailures uint32        `mapstructure:"cb_max_failures"`
}

// LoggerConfig настраивает поведение zap логгера.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig объединяет значения из файла, ENV и дефолтов.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// CRIMEDATA_PREDICTION_DELAY=2s перекроет crimedata.prediction_delay
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Если файла нет: работаем на ENV и дефолтах
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.CrimeData.DefaultCount < 0 || c.CrimeData.DefaultCount > crimedata.MaxIncidentCount {
		return fmt.Errorf("config: crimedata.default_count must be in [0, %d], got %d",
			crimedata.MaxIncidentCount, c.CrimeData.DefaultCount)
	}
	if c.CrimeData.PredictionDelay < 0 {
		return fmt.Errorf("config: crimedata.prediction_delay must be non-negative, got %s", c.CrimeData.PredictionDelay)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("config: server.port must be positive, got %d", c.Server.Port)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.cache_ttl", time.Minute)

	v.SetDefault("crimedata.default_count", 20)
	v.SetDefault("crimedata.center_lat", 34.0522)
	v.SetDefault("crimedata.center_lng", -118.2437)
	v.SetDefault("crimedata.prediction_delay", 800*time.Millisecond)
	v.SetDefault("crimedata.prediction_timeout", 0)

	v.SetDefault("reliability.rate_limit", 100)
	v.SetDefault("reliability.rate_burst", 20)
	v.SetDefault("reliability.retry_attempts", 3)
	v.SetDefault("reliability.retry_delay", 100*time.Millisecond)
	v.SetDefault("reliability.call_timeout", 5*time.Second)
	v.SetDefault("reliability.cb_max_requests", 3)
	v.SetDefault("reliability.cb_interval", 5*time.Second)
	v.SetDefault("reliability.cb_timeout", 30*time.Second)
	v.SetDefault("reliability.cb_max_failures", 5)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}
