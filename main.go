package main

import (
	"log"

	"fyne.io/fyne/v2/app"

	"github.com/SsnAgo/guitar-practice/internal/config"
	"github.com/SsnAgo/guitar-practice/internal/fretboard"
	"github.com/SsnAgo/guitar-practice/internal/midi"
	"github.com/SsnAgo/guitar-practice/internal/playback"
	"github.com/SsnAgo/guitar-practice/internal/window"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Normalize()

	// Initialize MIDI manager and the note synth
	midiManager := midi.NewManager()
	defer midiManager.Close()
	synth := midi.NewSynth(midiManager, cfg.MidiOutPort)

	// Wire the engine: mapping cache + playback scheduler. The observer is
	// bound to the window once it exists; scheduler events can only start
	// flowing after the UI triggers them.
	cache := fretboard.NewCache()
	var mainWindow *window.MainWindow
	scheduler := playback.NewScheduler(synth, cache, func(ev playback.Event) {
		if mainWindow != nil {
			mainWindow.HandlePlaybackEvent(ev)
		}
	})
	scheduler.SetTempo(float64(cfg.BPM))
	scheduler.SetPrepareDelay(cfg.PrepareDelay())
	scheduler.SetDoSpec(cfg.DoSpec())

	// Create Fyne app and the main window
	fyneApp := app.NewWithID("com.ssnago.guitarpractice")
	mainWindow = window.NewMainWindow(fyneApp, cfg, scheduler, cache, synth, midiManager)

	if !cfg.FirstLaunchCompleted {
		cfg.FirstLaunchCompleted = true
		if err := cfg.Save(); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}
	mainWindow.Show()

	// Run the Fyne app (this blocks until the window is closed)
	fyneApp.Run()
}
