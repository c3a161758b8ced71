package minwasm

import "go.uber.org/zap"

// RuntimeConfig controls Runtime behavior. Each With method returns a copy,
// so configurations can be shared safely.
type RuntimeConfig struct {
	logger *zap.Logger
}

// NewRuntimeConfig returns a config that logs nothing.
func NewRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{logger: zap.NewNop()}
}

// WithLogger routes decode progress and call tracing to logger, at debug
// level.
func (c *RuntimeConfig) WithLogger(logger *zap.Logger) *RuntimeConfig {
	ret := *c
	if logger == nil {
		logger = zap.NewNop()
	}
	ret.logger = logger
	return &ret
}
