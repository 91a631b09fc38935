package config

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Auth        AuthConfig        `yaml:"auth"`
	Store       StoreConfig       `yaml:"store"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Predictor   PredictorConfig   `yaml:"predictor"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Host      string          `yaml:"host"`
	Port      int             `yaml:"port"`
	PIDFile   string          `yaml:"pid_file"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type AuthConfig struct {
	Enabled  bool   `yaml:"enabled"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// StoreConfig points at the job database predictions are derived from.
type StoreConfig struct {
	// Path to the SQLite database file.
	Path string `yaml:"path"`
}

// PersistenceConfig controls where the trained model artifact and the
// training state file live.
type PersistenceConfig struct {
	DataDir string `yaml:"data_dir"`
}

// PredictorConfig holds prediction pipeline configuration.
type PredictorConfig struct {
	// StaleThreshold is the fraction of changed rows, relative to the size
	// of the last training set, that forces a full retrain.
	StaleThreshold float64 `yaml:"stale_threshold"`

	// Regressor type: tree, linear
	Regressor string `yaml:"regressor"`

	// Tree regressor parameters
	Tree TreeConfig `yaml:"tree"`
}

// TreeConfig holds decision-tree regressor parameters.
type TreeConfig struct {
	MaxDepth       int `yaml:"max_depth"`
	MinLeafSamples int `yaml:"min_leaf_samples"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
