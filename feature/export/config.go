package export

// Config holds configuration for the export pipeline.
type Config struct {
	// Tool is the name or path of the vault CLI binary to invoke.
	Tool string `mapstructure:"tool" default:"op"`
	// Workers is the number of concurrent fetch workers.
	Workers int `mapstructure:"workers" default:"5"`
	// RetryAttempts is the total number of attempts per item fetch,
	// including the first one.
	RetryAttempts int `mapstructure:"retry_attempts" default:"5"`
	// BackoffBaseMS is the base backoff window in milliseconds. The
	// wait before retry k is drawn uniformly from [k*base, (k+1)*base).
	BackoffBaseMS int `mapstructure:"backoff_base_ms" default:"3000"`
	// DisableBackoffSleep skips the actual backoff sleep while still
	// executing every retry. Intended for tests.
	DisableBackoffSleep bool `mapstructure:"disable_backoff_sleep" default:"false"`
	// RequireObject rejects fetched payloads that are not JSON objects.
	RequireObject bool `mapstructure:"require_object" default:"false"`
	// ProgressIntervalMS is the minimum time between progress reports
	// in milliseconds.
	ProgressIntervalMS int `mapstructure:"progress_interval_ms" default:"1000"`
}
