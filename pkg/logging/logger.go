package logging

import (
	"go.uber.org/zap"
)

// NewLogger builds the root zap logger for the given environment.
// Local and development environments get human-readable console output;
// everything else gets production JSON.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
