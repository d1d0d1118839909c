package store

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures the optional clickhouse mirror
// the adapter only dials and pings; enabling it adds a readiness check,
// not a write path
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}
