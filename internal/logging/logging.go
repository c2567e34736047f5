// Package logging builds the application logger.
package logging

import "go.uber.org/zap"

// New returns a console logger in dev and a JSON production logger otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
