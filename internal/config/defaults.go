package config

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8090,
			PIDFile: "",
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerSecond: 100,
				Burst:             200,
			},
		},
		Auth: AuthConfig{
			Enabled:  false,
			User:     "",
			Password: "",
		},
		Store: StoreConfig{
			Path: "./paycast.db",
		},
		Persistence: PersistenceConfig{
			DataDir: "./data",
		},
		Predictor: PredictorConfig{
			StaleThreshold: 0.20,
			Regressor:      "tree",
			Tree: TreeConfig{
				MaxDepth:       12,
				MinLeafSamples: 1,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
