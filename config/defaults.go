package config

import "time"

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            ":9000",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			IdleTimeout:     Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Database: Database{
			Driver:          DriverMySQL,
			DSN:             "root:@tcp(localhost:3306)/artist?charset=utf8mb4&parseTime=True&loc=UTC",
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: Duration{30 * time.Minute},
			SlowThreshold:   Duration{1500 * time.Millisecond},
		},
		Auth: Auth{
			AccessTTL:          Duration{15 * time.Minute},
			RefreshTTL:         Duration{7 * 24 * time.Hour},
			BcryptCost:         10,
			LoginRatePerSecond: 5,
			LoginBurst:         10,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Bulk: Bulk{
			MaxImportRows:  1000,
			MaxUploadBytes: 5 << 20,
		},
	}
}
