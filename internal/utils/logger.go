package utils

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Production config when
// ENV=production, human-readable development config otherwise.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
