package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. Debug selects zap's development preset
// (console encoding, debug level); otherwise the JSON production preset.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
