//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// buttonKeys maps desktop keys onto the four watch buttons.
var buttonKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyArrowRight, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyArrowLeft, KeyEscape},
	{ebiten.KeyBackspace, KeyEscape},
}

func (k *hostKeyboard) poll() {
	emit := func(code KeyCode, press bool) {
		select {
		case k.ch <- KeyEvent{Code: code, Press: press}:
		default:
		}
	}

	for _, b := range buttonKeys {
		if inpututil.IsKeyJustPressed(b.key) {
			emit(b.code, true)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			emit(b.code, false)
		}
	}
}
