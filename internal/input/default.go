package input

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
)

type Event struct {
	Rune rune
	Key  keyboard.Key
	Time time.Time // when the key was read, not when the frame saw it
}

func (e Event) Quit() bool {
	return e.Key == keyboard.KeyEsc || e.Key == keyboard.KeyCtrlC
}

// Tap reports whether this event is a tap on key, 0 accepts any key
func (e Event) Tap(key rune) bool {
	if e.Quit() {
		return false
	}
	switch key {
	case 0:
		return true
	case ' ':
		return e.Key == keyboard.KeySpace || e.Rune == ' '
	}
	return e.Rune == key
}

type Keyboard struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// Open starts reading keys in the background. The terminal is left in
// raw mode until Close.
func Open(buffer int) (*Keyboard, error) {
	keys, err := keyboard.GetKeys(buffer)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	k := &Keyboard{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go k.read(keys)
	return k, nil
}

func (k *Keyboard) read(keys <-chan keyboard.KeyEvent) {
	for {
		select {
		case <-k.done:
			return
		case ev, ok := <-keys:
			if !ok {
				return
			}
			if nil != ev.Err {
				log.Println("unable to read keyboard input", ev.Err)
				continue
			}
			select {
			case k.events <- Event{Rune: ev.Rune, Key: ev.Key, Time: time.Now()}:
			default:
				log.Println("dropped key, frame loop is behind")
			}
		}
	}
}

func (k *Keyboard) Events() <-chan Event {
	return k.events
}

// stop ends the reader, it reports false if it was already stopped
func (k *Keyboard) stop() bool {
	stopped := false
	k.once.Do(func() {
		close(k.done)
		stopped = true
	})
	return stopped
}

// Close restores the terminal. It is safe to call more than once.
func (k *Keyboard) Close() error {
	if !k.stop() {
		return nil
	}
	return keyboard.Close()
}
