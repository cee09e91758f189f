package config

import "coilgen.GO/core/logger"

// NewLogger builds the application logger for LOG_MODE, falling back to a
// no-op logger if zap cannot be configured.
func NewLogger() *logger.Logger {
	mode := "dev"
	if cfg, err := LoadAppConfig(); err == nil {
		mode = cfg.LogMode
	}
	l, err := logger.New(mode)
	if err != nil {
		return logger.Nop()
	}
	return l
}
