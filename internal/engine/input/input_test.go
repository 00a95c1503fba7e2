package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{"quit", &sdl.QuitEvent{}, Event{Type: EventQuit}, true},
		{
			"resize",
			&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600},
			true,
		},
		{"other window event", &sdl.WindowEvent{Event: sdl.WINDOWEVENT_MOVED}, Event{}, false},
		{
			"key down",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_W},
			true,
		},
		{
			"mouse move",
			&sdl.MouseMotionEvent{X: 10, Y: 20, XRel: 3, YRel: -2},
			Event{Type: EventMouseMove, MouseX: 10, MouseY: 20, DX: 3, DY: -2},
			true,
		},
		{
			"mouse down",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, X: 1, Y: 2, Button: sdl.BUTTON_LEFT},
			Event{Type: EventMouseDown, MouseX: 1, MouseY: 2, Button: sdl.BUTTON_LEFT},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDragAccumulatesWhileHeld(t *testing.T) {
	in := New()
	in.handle(Event{Type: EventMouseMove, DX: 5, DY: 5})
	in.handle(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT})
	in.handle(Event{Type: EventMouseMove, DX: 3, DY: -1})
	in.handle(Event{Type: EventMouseMove, DX: 2, DY: -1})
	in.handle(Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT})
	in.handle(Event{Type: EventMouseMove, DX: 9, DY: 9})

	if dx, dy := in.Drag(); dx != 5 || dy != -2 {
		t.Errorf("drag: got (%v, %v), want (5, -2)", dx, dy)
	}
}

func TestQuitEvents(t *testing.T) {
	in := New()
	if in.handle(Event{Type: EventKeyDown, Key: sdl.SCANCODE_W}) {
		t.Error("W should not quit")
	}
	if !in.handle(Event{Type: EventKeyDown, Key: sdl.SCANCODE_ESCAPE}) {
		t.Error("escape should quit")
	}
	if !in.handle(Event{Type: EventQuit}) {
		t.Error("quit event should quit")
	}
	if !in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		t.Error("escape should be recorded as pressed")
	}
}
