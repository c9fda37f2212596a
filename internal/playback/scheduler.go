// Package playback walks a mapped practice sequence forward on a timer,
// honoring the configured tempo and an optional one-shot pre-roll delay.
package playback

import (
	"log"
	"sync"
	"time"

	"github.com/SsnAgo/guitar-practice/internal/fretboard"
	"github.com/SsnAgo/guitar-practice/internal/sequence"
)

// State is the scheduler's externally visible mode.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

// Synth is the audio synthesis backend. The pitch identifier is a note name
// plus octave ("C3"); the duration hint is advisory and not inspected by the
// scheduler. The call must return once the note has been triggered.
type Synth interface {
	PlayPitch(pitchIdentifier, durationHint string) error
}

// Event is emitted to the observer on every state transition. Cursor is -1
// and Note is nil while no element is current (idle, or playing inside the
// pre-roll delay).
type Event struct {
	State      State
	Cursor     int
	Note       *fretboard.MappedNote
	SequenceID string
}

// Observer receives playback events. It is invoked outside the scheduler's
// lock, so it may call back into the scheduler.
type Observer func(Event)

// defaultDurationHint is handed to the synth with every trigger.
const defaultDurationHint = "8n"

// Scheduler is the timer-driven playback state machine. All externally
// observable transitions happen either inside an operation call or on a
// timer callback; between those the scheduler is quiescent.
//
// Invariant: at most one pending timer exists at any time. Every
// state-changing operation cancels the outstanding timer (and bumps the
// generation counter, which invalidates a callback that already fired but
// has not taken the lock yet) before deciding what to schedule next.
type Scheduler struct {
	mu       sync.Mutex
	synth    Synth
	cache    *fretboard.Cache
	observer Observer

	do           fretboard.DoSpec
	bpm          float64
	prepareDelay time.Duration

	seq   sequence.Sequence
	notes []fretboard.MappedNote

	state  State
	cursor int // index into notes, -1 = none

	pending *time.Timer
	gen     uint64
}

// NewScheduler creates an idle scheduler. The observer may be nil.
func NewScheduler(synth Synth, cache *fretboard.Cache, observer Observer) *Scheduler {
	return &Scheduler{
		synth:    synth,
		cache:    cache,
		observer: observer,
		do:       fretboard.PitchDo{Name: "C"},
		bpm:      120,
		cursor:   -1,
	}
}

// SetTempo sets the playback tempo in beats per minute. It affects only the
// delay used for notes not yet scheduled; a note already in flight keeps its
// original timing. Non-positive values are ignored.
func (s *Scheduler) SetTempo(bpm float64) {
	if bpm <= 0 {
		return
	}
	s.mu.Lock()
	s.bpm = bpm
	s.mu.Unlock()
}

// SetPrepareDelay sets the one-shot pre-roll applied when playback starts
// from the beginning. Negative values are ignored.
func (s *Scheduler) SetPrepareDelay(d time.Duration) {
	if d < 0 {
		return
	}
	s.mu.Lock()
	s.prepareDelay = d
	s.mu.Unlock()
}

// SetDoSpec sets the do-specification used by the next Generate. Notes of
// the active sequence are not remapped.
func (s *Scheduler) SetDoSpec(do fretboard.DoSpec) {
	s.mu.Lock()
	s.do = do
	s.mu.Unlock()
}

// DoSpec returns the do-specification in effect for new sequences.
func (s *Scheduler) DoSpec() fretboard.DoSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do
}

// Generate cancels any active playback and replaces the session with a fresh
// sequence of the given length, pre-resolved through the mapping cache.
func (s *Scheduler) Generate(length int) {
	s.mu.Lock()
	s.cancelPendingLocked()

	s.seq = sequence.Generate(length)
	s.notes = make([]fretboard.MappedNote, s.seq.Len())
	for i, digit := range s.seq.Digits {
		s.notes[i] = s.cache.Get(digit, s.do)
	}
	s.state = StateIdle
	s.cursor = -1

	ev := s.eventLocked()
	s.mu.Unlock()
	s.notify(ev)
}

// Play starts playback from the beginning. Valid only while idle with a
// sequence loaded; otherwise it does nothing. With a pre-roll delay
// configured the state becomes Playing immediately but the first note
// triggers only after the delay elapses.
func (s *Scheduler) Play() {
	s.mu.Lock()
	if s.state != StateIdle || len(s.notes) == 0 {
		s.mu.Unlock()
		return
	}
	s.cancelPendingLocked()
	s.state = StatePlaying

	var ev Event
	if s.prepareDelay > 0 {
		s.scheduleAdvanceLocked(s.prepareDelay)
		ev = s.eventLocked() // cursor still -1: "preparing"
	} else {
		ev = s.triggerLocked(0)
	}
	s.mu.Unlock()
	s.notify(ev)
}

// PlayFromIndex seeks to index i and plays it immediately, with no pre-roll,
// regardless of the current state. An out-of-range index is a no-op rather
// than an error: it can legitimately race with a concurrent Generate.
func (s *Scheduler) PlayFromIndex(i int) {
	s.mu.Lock()
	if i < 0 || i >= len(s.notes) {
		s.mu.Unlock()
		return
	}
	s.cancelPendingLocked()
	s.state = StatePlaying
	ev := s.triggerLocked(i)
	s.mu.Unlock()
	s.notify(ev)
}

// Pause halts playback, keeping the cursor. Valid only while playing. The
// current note is not re-triggered on resume.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	if s.state != StatePlaying {
		s.mu.Unlock()
		return
	}
	s.cancelPendingLocked()
	s.state = StatePaused
	ev := s.eventLocked()
	s.mu.Unlock()
	s.notify(ev)
}

// Resume continues a paused session. It always advances past the last-played
// note: the note at cursor+1 triggers immediately. Resuming with the cursor
// already on the last element ends the session.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	if s.state != StatePaused {
		s.mu.Unlock()
		return
	}
	s.cancelPendingLocked()
	s.state = StatePlaying

	var ev Event
	if next := s.cursor + 1; next >= len(s.notes) {
		ev = s.finishLocked()
	} else {
		ev = s.triggerLocked(next)
	}
	s.mu.Unlock()
	s.notify(ev)
}

// Stop cancels all pending timers, clears the cursor and returns to idle.
// Valid from any state.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.cancelPendingLocked()
	ev := s.finishLocked()
	s.mu.Unlock()
	s.notify(ev)
}

// State returns the current playback state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cursor returns the index of the current note, or -1 if none.
func (s *Scheduler) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Sequence returns the active sequence (zero value if none generated yet).
func (s *Scheduler) Sequence() sequence.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Notes returns a copy of the mapped notes of the active sequence.
func (s *Scheduler) Notes() []fretboard.MappedNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := make([]fretboard.MappedNote, len(s.notes))
	copy(notes, s.notes)
	return notes
}

// cancelPendingLocked stops the outstanding timer, if any, and invalidates
// callbacks that have already fired but not yet taken the lock.
func (s *Scheduler) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.gen++
}

// noteDelayLocked converts the tempo to the inter-note delay. The division
// is done in floating point and handed to the timer un-rounded; fractional
// milliseconds must survive so long sequences do not drift.
func (s *Scheduler) noteDelayLocked() time.Duration {
	return time.Duration(60000.0 / s.bpm * float64(time.Millisecond))
}

// scheduleAdvanceLocked arms the single pending timer to advance the cursor
// after the given delay.
func (s *Scheduler) scheduleAdvanceLocked(delay time.Duration) {
	gen := s.gen
	s.pending = time.AfterFunc(delay, func() {
		s.advance(gen)
	})
}

// advance is the timer callback: move to the next note, or finish when the
// sequence is exhausted. A stale generation means the timer was cancelled
// between firing and acquiring the lock.
func (s *Scheduler) advance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.state != StatePlaying {
		s.mu.Unlock()
		return
	}
	s.pending = nil

	var ev Event
	if next := s.cursor + 1; next >= len(s.notes) {
		ev = s.finishLocked()
	} else {
		ev = s.triggerLocked(next)
	}
	s.mu.Unlock()
	s.notify(ev)
}

// triggerLocked makes index i the current note, fires the synth and arms the
// advance timer. The synth call completes before the next note is scheduled;
// a synth failure is logged and playback keeps advancing on schedule, so a
// transient audio glitch cannot desynchronize the sequence.
func (s *Scheduler) triggerLocked(i int) Event {
	s.cursor = i
	note := s.notes[i]
	if err := s.synth.PlayPitch(note.Pitch.String(), defaultDurationHint); err != nil {
		log.Printf("playback: synth failed for %s: %v", note.Pitch, err)
	}
	s.scheduleAdvanceLocked(s.noteDelayLocked())
	return s.eventLocked()
}

// finishLocked returns the scheduler to idle with no current note.
func (s *Scheduler) finishLocked() Event {
	s.state = StateIdle
	s.cursor = -1
	return s.eventLocked()
}

// eventLocked snapshots the current state for the observer. The note is
// copied so the event stays valid after the session is replaced.
func (s *Scheduler) eventLocked() Event {
	ev := Event{
		State:      s.state,
		Cursor:     s.cursor,
		SequenceID: s.seq.ID,
	}
	if s.cursor >= 0 && s.cursor < len(s.notes) {
		note := s.notes[s.cursor]
		ev.Note = &note
	}
	return ev
}

func (s *Scheduler) notify(ev Event) {
	if s.observer != nil {
		s.observer(ev)
	}
}
