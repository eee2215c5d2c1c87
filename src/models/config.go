package models

// MConfig Structure
type MConfig struct {
	Name     string           `yaml:"name"`
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	LogLevel string           `yaml:"log_level"`
	Symbols  []string         `yaml:"symbols"`
	Storage  MStorageConfig   `yaml:"storage"`
	Network  MNetworkConfig   `yaml:"network"`
	Provider MProviderConfig  `yaml:"provider"`
	Schedule MScheduleConfig  `yaml:"schedule"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // "sqlite", "postgres" or "redis"
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RedisAddr          string `yaml:"redis_addr"`
	RedisPassword      string `yaml:"redis_password"`
	RedisDB            int    `yaml:"redis_db"`
}

type MNetworkConfig struct {
	RequestTimeout      int    `yaml:"timeout"`               // seconds, data fetches
	MaxRetries          int    `yaml:"retries"`
	ConcurrentRequests  int    `yaml:"concurrent_requests"`   // per-symbol fan-out limit
	ReachabilityURL     string `yaml:"reachability_url"`
	ReachabilityTimeout int    `yaml:"reachability_timeout"`  // seconds, probe only
	UserAgent           string `yaml:"user_agent"`
}

type MProviderConfig struct {
	ChartBaseURL  string `yaml:"chart_base_url"`
	ChartRange    string `yaml:"chart_range"`
	ChartInterval string `yaml:"chart_interval"`
	SummaryURL    string `yaml:"summary_url"`
}

type MScheduleConfig struct {
	DailyCron string `yaml:"daily_cron"` // empty disables the scheduled refresh
}
