package midi

import (
	"fmt"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/SsnAgo/guitar-practice/internal/pitch"
)

// gateTimes maps the advisory duration hint to the NoteOn..NoteOff gate.
// The hints follow the usual "8n = eighth note" naming at a nominal 120 bpm;
// the playback scheduler owns the real inter-note timing, so the gate only
// needs to sound natural.
var gateTimes = map[string]time.Duration{
	"1n":  2 * time.Second,
	"2n":  time.Second,
	"4n":  500 * time.Millisecond,
	"8n":  250 * time.Millisecond,
	"16n": 125 * time.Millisecond,
}

const defaultGate = 250 * time.Millisecond

// Synth plays single pitches on a MIDI output port. It implements the
// playback scheduler's Synth interface.
type Synth struct {
	manager *Manager

	mu       sync.Mutex
	portName string
	channel  uint8
	velocity uint8
}

// NewSynth creates a synth bound to the named output port. The port is
// looked up lazily on each trigger so plugging the device in after startup
// just works.
func NewSynth(manager *Manager, portName string) *Synth {
	return &Synth{
		manager:  manager,
		portName: portName,
		channel:  0,
		velocity: 100,
	}
}

// SetPort switches the output port used for subsequent notes.
func (s *Synth) SetPort(portName string) {
	s.mu.Lock()
	s.portName = portName
	s.mu.Unlock()
}

// PlayPitch triggers a single note. The pitch identifier is a note name plus
// octave ("C3"); the duration hint selects the gate time before NoteOff.
// The NoteOff is scheduled asynchronously; the trigger itself has returned
// once the NoteOn is on the wire.
func (s *Synth) PlayPitch(pitchIdentifier, durationHint string) error {
	p, err := pitch.Parse(pitchIdentifier)
	if err != nil {
		return fmt.Errorf("bad pitch identifier: %w", err)
	}

	s.mu.Lock()
	portName := s.portName
	channel := s.channel
	velocity := s.velocity
	s.mu.Unlock()

	if portName == "" {
		return fmt.Errorf("no MIDI output port configured")
	}
	out, err := s.manager.GetOutPort(portName)
	if err != nil {
		return err
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}

	key := uint8(p)
	if err := send(midi.NoteOn(channel, key, velocity)); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}

	gate, ok := gateTimes[durationHint]
	if !ok {
		gate = defaultGate
	}
	time.AfterFunc(gate, func() {
		// The port may have vanished in the meantime; a lost NoteOff on a
		// disconnected device is moot.
		_ = send(midi.NoteOff(channel, key))
	})
	return nil
}
