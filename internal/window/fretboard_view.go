package window

import (
	"fmt"
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"

	"github.com/SsnAgo/guitar-practice/internal/config"
	"github.com/SsnAgo/guitar-practice/internal/fretboard"
	"github.com/SsnAgo/guitar-practice/internal/pitch"
)

// buildFretboard lays out the 6x15 grid of tappable fret cells, string 1
// (high E) on top, with a fret-number header row.
func (mw *MainWindow) buildFretboard() fyne.CanvasObject {
	rows := make([]fyne.CanvasObject, 0, fretboard.NumStrings+1)

	header := make([]fyne.CanvasObject, 0, fretboard.MaxFret+2)
	header = append(header, widget.NewLabel(""))
	for f := 0; f <= fretboard.MaxFret; f++ {
		header = append(header, widget.NewLabelWithStyle(
			fmt.Sprintf("%d", f), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
	}
	rows = append(rows, container.NewGridWithColumns(len(header), header...))

	for s := 1; s <= fretboard.NumStrings; s++ {
		open := fretboard.Position{String: s, Fret: 0}.Pitch()
		row := make([]fyne.CanvasObject, 0, fretboard.MaxFret+2)
		row = append(row, widget.NewLabelWithStyle(
			open.String(), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))
		for f := 0; f <= fretboard.MaxFret; f++ {
			pos := fretboard.Position{String: s, Fret: f}
			cell := widget.NewButton("", func() {
				mw.onCellTapped(pos)
			})
			mw.cells[s][f] = cell
			row = append(row, cell)
		}
		rows = append(rows, container.NewGridWithColumns(len(row), row...))
	}

	return container.NewVBox(rows...)
}

// onCellTapped runs the reverse resolution for a tapped position: the pitch
// is known, the digit is inferred from scale membership (0 = not a member).
// In position mode the tap also moves "do" to the tapped point.
func (mw *MainWindow) onCellTapped(pos fretboard.Position) {
	if mw.cfg.DoMode == config.DoModePosition {
		mw.cfg.DoPosition = pos
		mw.applySettings()
	}

	note := fretboard.Tap(pos, mw.cfg.DoSpec())
	mw.highlightCell(&note.Position)
	mw.setBadge(note.Pitch.String())
	if note.Digit == 0 {
		mw.status.SetText(fmt.Sprintf("%s at %s — not in the current scale",
			note.Pitch, note.Position.Label()))
	} else {
		mw.status.SetText(fmt.Sprintf("%s at %s — digit %d",
			note.Pitch, note.Position.Label(), note.Digit))
	}

	if err := mw.synth.PlayPitch(note.Pitch.String(), "8n"); err != nil {
		log.Printf("Tap preview failed: %v", err)
	}
}

// highlightCell lights exactly one fretboard cell, or none when pos is nil.
func (mw *MainWindow) highlightCell(pos *fretboard.Position) {
	if mw.lit != nil {
		cell := mw.cells[mw.lit.String][mw.lit.Fret]
		cell.Importance = widget.MediumImportance
		cell.SetText(mw.baseCellText(*mw.lit))
	}
	mw.lit = pos
	if pos != nil {
		cell := mw.cells[pos.String][pos.Fret]
		cell.Importance = widget.HighImportance
		cell.SetText(pos.Pitch().Name())
	}
}

// baseCellText is what a cell shows when it is not the playback highlight:
// its scale degree while the overlay is on, otherwise nothing.
func (mw *MainWindow) baseCellText(pos fretboard.Position) string {
	if d, ok := mw.overlay[pos]; ok {
		return fmt.Sprintf("%d", d)
	}
	return ""
}

func (mw *MainWindow) toggleScaleOverlay() {
	if mw.overlay != nil {
		mw.hideScaleOverlay()
	} else {
		mw.showScaleOverlay()
	}
}

// showScaleOverlay marks the resolved position of each degree 1..7 under the
// active do. Resolution goes through the mapping cache so repeated toggles
// and do changes stay cheap.
func (mw *MainWindow) showScaleOverlay() {
	do := mw.cfg.DoSpec()
	mw.overlay = make(map[fretboard.Position]int, 7)
	for digit := 1; digit <= 7; digit++ {
		note := mw.cache.Get(digit, do)
		mw.overlay[note.Position] = digit
		if mw.lit == nil || *mw.lit != note.Position {
			mw.cells[note.Position.String][note.Position.Fret].SetText(fmt.Sprintf("%d", digit))
		}
	}
}

func (mw *MainWindow) hideScaleOverlay() {
	for pos := range mw.overlay {
		if mw.lit == nil || *mw.lit != pos {
			mw.cells[pos.String][pos.Fret].SetText("")
		}
	}
	mw.overlay = nil
}

func (mw *MainWindow) setBadge(text string) {
	mw.noteBadge.Objects = []fyne.CanvasObject{noteBadge(text)}
	mw.noteBadge.Refresh()
}

// noteBadge renders the note identifier as a large anti-aliased image using
// freetype, so the "now playing" display stays readable from a distance.
func noteBadge(text string) *canvas.Image {
	fontResource := theme.DefaultTextFont()
	fontBytes := fontResource.Content()

	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		log.Printf("Failed to parse font: %v", err)
		return canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}

	fontSize := float64(42)
	dpi := float64(72)

	opts := truetype.Options{Size: fontSize, DPI: dpi}
	face := truetype.NewFace(f, &opts)
	defer face.Close()

	textWidth := 0
	for _, r := range text {
		if adv, ok := face.GlyphAdvance(r); ok {
			textWidth += adv.Round()
		}
	}
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	ascent := metrics.Ascent.Ceil()

	padding := 6
	imgWidth := textWidth + padding*2
	imgHeight := textHeight + padding*2

	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetDPI(dpi)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(theme.ForegroundColor()))

	if _, err := c.DrawString(text, freetype.Pt(padding, padding+ascent)); err != nil {
		log.Printf("Failed to draw string: %v", err)
	}

	canvasImg := canvas.NewImageFromImage(img)
	canvasImg.SetMinSize(fyne.NewSize(float32(imgWidth), float32(imgHeight)))
	canvasImg.FillMode = canvas.ImageFillOriginal
	return canvasImg
}

func noteNameOptions() []string {
	return pitch.NoteNames()
}
