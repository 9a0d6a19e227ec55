package config

// Config root configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	Kakao  KakaoConfig  `mapstructure:"kakao"`
	Route  RouteConfig  `mapstructure:"route"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DBConfig database connection. Driver is one of sqlite, postgres, mysql.
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// RedisConfig an empty Addr disables redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig object storage for profile images. An empty Endpoint disables uploads.
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

// KakaoConfig geocoding upstream
type KakaoConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	RestAPIKey      string `mapstructure:"rest_api_key"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
}

// RouteConfig session consolidation
type RouteConfig struct {
	SessionGapSeconds int    `mapstructure:"session_gap_seconds"`
	ConsolidateCron   string `mapstructure:"consolidate_cron"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}
