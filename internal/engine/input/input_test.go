package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslateMouse(t *testing.T) {
	tests := []struct {
		name string
		in   sdl.Event
		want Event
	}{
		{
			name: "left press",
			in:   &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20},
			want: Event{Type: EventMouseDown, Button: ButtonPrimary, MouseX: 10, MouseY: 20},
		},
		{
			name: "left release",
			in:   &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 1, Y: 2},
			want: Event{Type: EventMouseUp, Button: ButtonPrimary, MouseX: 1, MouseY: 2},
		},
		{
			name: "right press",
			in:   &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT, X: 5, Y: 6},
			want: Event{Type: EventMouseDown, Button: ButtonSecondary, MouseX: 5, MouseY: 6},
		},
		{
			name: "middle press",
			in:   &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_MIDDLE},
			want: Event{Type: EventMouseDown, Button: ButtonOther},
		},
		{
			name: "motion",
			in:   &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 300, Y: 150},
			want: Event{Type: EventMouseMove, MouseX: 300, MouseY: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.in)
			if !ok {
				t.Fatal("event dropped")
			}
			if got != tt.want {
				t.Errorf("translate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTranslateWindowAndKeys(t *testing.T) {
	got, ok := translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 400})
	if !ok || got != (Event{Type: EventWindowResize, Width: 800, Height: 400}) {
		t.Errorf("resize = %+v, %v", got, ok)
	}

	if _, ok := translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_MOVED}); ok {
		t.Error("window move should be dropped")
	}

	got, ok = translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}})
	if !ok || got.Key != KeyEscape {
		t.Errorf("escape = %+v, %v", got, ok)
	}

	got, ok = translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}})
	if !ok || got.Key != KeyScreenshot {
		t.Errorf("F12 = %+v, %v", got, ok)
	}

	if _, ok := translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}}); ok {
		t.Error("key repeat should be dropped")
	}
	if _, ok := translate(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}}); ok {
		t.Error("key up should be dropped")
	}

	got, ok = translate(&sdl.QuitEvent{Type: sdl.QUIT})
	if !ok || got.Type != EventQuit {
		t.Errorf("quit = %+v, %v", got, ok)
	}
}
