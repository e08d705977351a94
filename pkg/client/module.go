package client

import (
	"time"

	"github.com/go-uolib/client/pkg/ui"
)

// Module is a pluggable game-state or UI component.
type Module interface {
	// Name returns a unique key for this module (e.g. "world", "gumps").
	Name() string
	// Init is called once when the module is registered on a client.
	// Store the *Client reference for later use.
	Init(c *Client)
	// Update is called once per frame with the total elapsed time.
	Update(total time.Duration)
	// Reset clears module state.
	Reset()
}

// CommandHandler is optionally implemented by modules that accept text commands
// from the interactive console. It reports whether the command was consumed.
type CommandHandler interface {
	HandleCommand(args []string) (bool, error)
}

// Renderer is optionally implemented by modules that draw windows.
type Renderer interface {
	Render(c ui.Canvas)
}

// WheelHandler is optionally implemented by modules that react to the mouse wheel.
// x, y are absolute pixels.
type WheelHandler interface {
	HandleWheel(up bool, x, y int) bool
}

// PointerHandler is optionally implemented by modules that track the mouse
// pointer. x, y are absolute pixels.
type PointerHandler interface {
	HandlePointer(x, y int)
}
