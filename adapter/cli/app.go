package cli

import (
	"github.com/felixgeelhaar/slotwise/internal/app"
)

var currentApp *app.Container

// SetApp wires the application container into the CLI.
func SetApp(container *app.Container) {
	currentApp = container
}

// GetApp returns the application container, or nil when initialization
// failed.
func GetApp() *app.Container {
	return currentApp
}
