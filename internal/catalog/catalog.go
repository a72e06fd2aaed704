package catalog

import (
	"time"

	"github.com/agbru/domainflow/internal/registry"
)

// Component identifiers.
const (
	GreetID        = "greet"
	GreetHandlerID = "greet.handler"
	EchoID         = "echo"
	EchoHandlerID  = "echo.handler"
	VersionID      = "version"
	ClockID        = "clock"
)

// Register installs the built-in use cases and handlers in c.
func Register(c *registry.Container) error {
	entries := []struct {
		id       string
		instance any
	}{
		{GreetID, Greet{DefaultGreeting: "Hello"}},
		{GreetHandlerID, GreetHandler{}},
		{EchoID, Echo},
		{EchoHandlerID, NewEchoHandler()},
		{VersionID, Version{}},
	}
	for _, e := range entries {
		if err := c.Set(e.id, e.instance); err != nil {
			return err
		}
	}
	return c.Factory(ClockID, func() (any, error) {
		return Clock{Now: time.Now}, nil
	})
}
