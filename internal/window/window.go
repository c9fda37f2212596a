// Package window is the desktop UI: a fretboard diagram, a transport bar, a
// sequence strip and the settings form. It consumes the playback engine and
// never contains engine logic of its own.
package window

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/SsnAgo/guitar-practice/internal/config"
	"github.com/SsnAgo/guitar-practice/internal/fretboard"
	"github.com/SsnAgo/guitar-practice/internal/midi"
	"github.com/SsnAgo/guitar-practice/internal/playback"
)

// MainWindow manages the main application window
type MainWindow struct {
	window fyne.Window
	app    fyne.App

	cfg       *config.Config
	scheduler *playback.Scheduler
	cache     *fretboard.Cache
	synth     *midi.Synth
	midiMgr   *midi.Manager

	// Fretboard cells indexed [string][fret]
	cells [fretboard.NumStrings + 1][fretboard.MaxFret + 1]*widget.Button
	// Position of the currently highlighted cell, nil if none
	lit *fretboard.Position
	// Scale overlay: resolved position of each degree under the active do,
	// shown as digit labels on the board. Nil when hidden.
	overlay map[fretboard.Position]int

	// Sequence strip: one chip per digit, tap seeks there
	chips     []*widget.Button
	chipsBox  *fyne.Container
	seqID     string
	litChip   int
	noteBadge *fyne.Container
	status    *widget.Label

	playBtn   *widget.Button
	pauseBtn  *widget.Button
	resumeBtn *widget.Button
	stopBtn   *widget.Button
}

// NewMainWindow creates the main application window
func NewMainWindow(app fyne.App, cfg *config.Config, scheduler *playback.Scheduler,
	cache *fretboard.Cache, synth *midi.Synth, midiMgr *midi.Manager) *MainWindow {
	win := app.NewWindow("Guitar Practice")

	mw := &MainWindow{
		window:    win,
		app:       app,
		cfg:       cfg,
		scheduler: scheduler,
		cache:     cache,
		synth:     synth,
		midiMgr:   midiMgr,
		litChip:   -1,
	}

	mw.setupUI()

	win.Resize(fyne.NewSize(1050, 620))
	win.CenterOnScreen()
	return mw
}

// Show displays the window
func (mw *MainWindow) Show() {
	mw.window.Show()
}

func (mw *MainWindow) setupUI() {
	transport := mw.buildTransport()
	board := mw.buildFretboard()
	strip := mw.buildSequenceStrip()
	settings := mw.buildSettings()

	mw.status = widget.NewLabel("Generate a sequence to begin")
	mw.noteBadge = container.NewCenter(noteBadge("—"))

	left := container.NewBorder(
		transport,
		container.NewVBox(strip, mw.status),
		nil, nil,
		board,
	)
	right := container.NewBorder(mw.noteBadge, nil, nil, nil, settings)

	split := container.NewHSplit(left, right)
	split.SetOffset(0.72)
	mw.window.SetContent(split)
	mw.updateTransport()
}

// buildTransport creates the playback control bar
func (mw *MainWindow) buildTransport() *fyne.Container {
	generateBtn := widget.NewButton("Generate", func() {
		mw.scheduler.Generate(mw.cfg.SequenceLength)
	})
	mw.playBtn = widget.NewButton("Play", func() {
		mw.scheduler.Play()
	})
	mw.pauseBtn = widget.NewButton("Pause", func() {
		mw.scheduler.Pause()
	})
	mw.resumeBtn = widget.NewButton("Resume", func() {
		mw.scheduler.Resume()
	})
	mw.stopBtn = widget.NewButton("Stop", func() {
		mw.scheduler.Stop()
	})
	scaleBtn := widget.NewButton("Scale", func() {
		mw.toggleScaleOverlay()
	})
	return container.NewHBox(generateBtn, mw.playBtn, mw.pauseBtn, mw.resumeBtn, mw.stopBtn,
		widget.NewSeparator(), scaleBtn)
}

// buildSequenceStrip creates the row that shows the generated digits and the
// playback cursor. It is repopulated after every Generate.
func (mw *MainWindow) buildSequenceStrip() fyne.CanvasObject {
	mw.chipsBox = container.NewHBox()
	return container.NewHScroll(mw.chipsBox)
}

func (mw *MainWindow) rebuildSequenceStrip() {
	mw.chipsBox.RemoveAll()
	mw.chips = mw.chips[:0]
	mw.litChip = -1
	for i, note := range mw.scheduler.Notes() {
		idx := i
		chip := widget.NewButton(fmt.Sprintf("%d", note.Digit), func() {
			mw.scheduler.PlayFromIndex(idx)
		})
		mw.chips = append(mw.chips, chip)
		mw.chipsBox.Add(chip)
	}
	mw.chipsBox.Refresh()
}

// buildSettings creates the settings form. Every change is normalized,
// persisted and pushed into the engine immediately.
func (mw *MainWindow) buildSettings() *fyne.Container {
	doMode := widget.NewSelect([]string{string(config.DoModePitch), string(config.DoModePosition)}, func(sel string) {
		mw.cfg.DoMode = config.DoMode(sel)
		mw.applySettings()
	})
	doMode.SetSelected(string(mw.cfg.DoMode))

	doName := widget.NewSelect(noteNameOptions(), func(sel string) {
		mw.cfg.DoNoteName = sel
		mw.applySettings()
	})
	doName.SetSelected(mw.cfg.DoNoteName)

	bpmLabel := widget.NewLabel(fmt.Sprintf("%d bpm", mw.cfg.BPM))
	bpm := widget.NewSlider(config.MinBPM, config.MaxBPM)
	bpm.Step = 1
	bpm.SetValue(float64(mw.cfg.BPM))
	bpm.OnChanged = func(v float64) {
		mw.cfg.BPM = int(v)
		bpmLabel.SetText(fmt.Sprintf("%d bpm", mw.cfg.BPM))
		mw.applySettings()
	}

	lengthLabel := widget.NewLabel(fmt.Sprintf("%d notes", mw.cfg.SequenceLength))
	length := widget.NewSlider(config.MinSequenceLength, config.MaxSequenceLength)
	length.Step = 1
	length.SetValue(float64(mw.cfg.SequenceLength))
	length.OnChanged = func(v float64) {
		mw.cfg.SequenceLength = int(v)
		lengthLabel.SetText(fmt.Sprintf("%d notes", mw.cfg.SequenceLength))
		mw.applySettings()
	}

	delayLabel := widget.NewLabel(fmt.Sprintf("%d ms", mw.cfg.PrepareDelayMs))
	delay := widget.NewSlider(0, config.MaxPrepareDelayMs)
	delay.Step = 100
	delay.SetValue(float64(mw.cfg.PrepareDelayMs))
	delay.OnChanged = func(v float64) {
		mw.cfg.PrepareDelayMs = int(v)
		delayLabel.SetText(fmt.Sprintf("%d ms", mw.cfg.PrepareDelayMs))
		mw.applySettings()
	}

	ports := mw.midiMgr.ListOutPorts()
	outPort := widget.NewSelect(ports, func(sel string) {
		mw.cfg.MidiOutPort = sel
		mw.synth.SetPort(sel)
		mw.saveConfig()
	})
	if mw.cfg.MidiOutPort != "" {
		outPort.SetSelected(mw.cfg.MidiOutPort)
	}

	form := widget.NewForm(
		widget.NewFormItem("Do mode", doMode),
		widget.NewFormItem("Do note", doName),
		widget.NewFormItem("Tempo", container.NewBorder(nil, nil, nil, bpmLabel, bpm)),
		widget.NewFormItem("Length", container.NewBorder(nil, nil, nil, lengthLabel, length)),
		widget.NewFormItem("Pre-roll", container.NewBorder(nil, nil, nil, delayLabel, delay)),
		widget.NewFormItem("MIDI out", outPort),
	)

	hint := widget.NewLabel("In position mode, tap a fret to move \"do\" there.")
	hint.Wrapping = fyne.TextWrapWord
	return container.NewVBox(form, hint)
}

// applySettings pushes the current config into the engine and persists it.
// Tempo and do changes affect only notes not yet scheduled.
func (mw *MainWindow) applySettings() {
	mw.cfg.Normalize()
	mw.scheduler.SetTempo(float64(mw.cfg.BPM))
	mw.scheduler.SetPrepareDelay(mw.cfg.PrepareDelay())
	mw.scheduler.SetDoSpec(mw.cfg.DoSpec())
	mw.saveConfig()
	if mw.overlay != nil {
		// The do moved; re-resolve the overlay against the new scale.
		mw.hideScaleOverlay()
		mw.showScaleOverlay()
	}
}

func (mw *MainWindow) saveConfig() {
	if err := mw.cfg.Save(); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// HandlePlaybackEvent renders a scheduler transition: cursor highlight on
// the fretboard and sequence strip, the note badge, transport enablement.
func (mw *MainWindow) HandlePlaybackEvent(ev playback.Event) {
	fyne.Do(func() {
		if ev.SequenceID != mw.seqID {
			mw.seqID = ev.SequenceID
			mw.rebuildSequenceStrip()
		}

		mw.highlightChip(ev.Cursor)
		if ev.Note != nil {
			mw.highlightCell(&ev.Note.Position)
			mw.setBadge(ev.Note.Pitch.String())
			mw.status.SetText(fmt.Sprintf("%s · digit %d · %s · note %d/%d",
				ev.State, ev.Note.Digit, ev.Note.Position.Label(),
				ev.Cursor+1, mw.scheduler.Sequence().Len()))
		} else {
			mw.highlightCell(nil)
			switch ev.State {
			case playback.StatePlaying:
				mw.status.SetText("preparing…")
			case playback.StateIdle:
				mw.setBadge("—")
				if mw.scheduler.Sequence().Len() > 0 {
					mw.status.SetText("idle")
				}
			default:
				mw.status.SetText(ev.State.String())
			}
		}
		mw.updateTransportFor(ev.State)
	})
}

func (mw *MainWindow) updateTransport() {
	mw.updateTransportFor(mw.scheduler.State())
}

func (mw *MainWindow) updateTransportFor(state playback.State) {
	switch state {
	case playback.StatePlaying:
		mw.playBtn.Disable()
		mw.pauseBtn.Enable()
		mw.resumeBtn.Disable()
		mw.stopBtn.Enable()
	case playback.StatePaused:
		mw.playBtn.Disable()
		mw.pauseBtn.Disable()
		mw.resumeBtn.Enable()
		mw.stopBtn.Enable()
	default:
		if mw.scheduler.Sequence().Len() > 0 {
			mw.playBtn.Enable()
		} else {
			mw.playBtn.Disable()
		}
		mw.pauseBtn.Disable()
		mw.resumeBtn.Disable()
		mw.stopBtn.Disable()
	}
}

func (mw *MainWindow) highlightChip(cursor int) {
	if mw.litChip >= 0 && mw.litChip < len(mw.chips) {
		mw.chips[mw.litChip].Importance = widget.MediumImportance
		mw.chips[mw.litChip].Refresh()
	}
	mw.litChip = cursor
	if cursor >= 0 && cursor < len(mw.chips) {
		mw.chips[cursor].Importance = widget.HighImportance
		mw.chips[cursor].Refresh()
	}
}
