// Package midi is the audio synthesis backend: it turns the engine's
// abstract "play this pitch" requests into MIDI note messages on a
// user-selected output port.
package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

// Manager handles MIDI device discovery and management. It holds no state of
// its own; ports are enumerated from the driver on every call so hot-plugged
// devices show up.
type Manager struct{}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetOutPort returns an output port by name, or an error if it is not
// currently available.
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	outs := midi.GetOutPorts()
	for _, out := range outs {
		if out.String() == name {
			return out, nil
		}
	}
	return nil, fmt.Errorf("output port not found: %s", name)
}
