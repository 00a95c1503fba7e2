// Package input handles SDL2 input events and turns them into camera
// controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	// DX and DY are the relative motion of a mouse move.
	DX, DY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events   []Event
	dragging bool
	dragX    float32
	dragY    float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. It returns true when the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			quit = i.handle(e) || quit
		}
	}
	return quit
}

// handle records e and updates drag state.
func (i *Input) handle(e Event) bool {
	i.events = append(i.events, e)
	switch e.Type {
	case EventQuit:
		return true
	case EventKeyDown:
		return e.Key == sdl.SCANCODE_ESCAPE
	case EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = true
		}
	case EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = false
		}
	case EventMouseMove:
		if i.dragging {
			i.dragX += float32(e.DX)
			i.dragY += float32(e.DY)
		}
	}
	return false
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		switch e.Type {
		case sdl.KEYDOWN:
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		case sdl.KEYUP:
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DX:     int(e.XRel),
			DY:     int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Drag returns the mouse motion accumulated with the left button held
// during the last Update.
func (i *Input) Drag() (dx, dy float32) {
	return i.dragX, i.dragY
}

// Movement returns WASD / space / ctrl axes in [-1, 1].
func (i *Input) Movement() (forward, right, up float32) {
	keys := sdl.GetKeyboardState()
	axis := func(pos, neg sdl.Scancode) float32 {
		var v float32
		if keys[pos] != 0 {
			v++
		}
		if keys[neg] != 0 {
			v--
		}
		return v
	}
	return axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
		axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
		axis(sdl.SCANCODE_SPACE, sdl.SCANCODE_LCTRL)
}
