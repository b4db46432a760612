package config

const (
	defaultTokenPolicy     = "ascii"
	defaultPrecision       = 6
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultHistoryEnabled  = true
	defaultHistoryPath     = "~/.local/share/docdist/history.db"
	defaultHistoryKeepRows = 1000
	maxPrecision           = 15
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tokenizer: Tokenizer{
			Policy: defaultTokenPolicy,
		},
		Output: Output{
			Precision: defaultPrecision,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled:  defaultHistoryEnabled,
			Path:     defaultHistoryPath,
			KeepRows: defaultHistoryKeepRows,
		},
	}
}
