package main

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// HoldButton is a button that must be held down for a configured number of
// seconds before its action fires. Releasing or leaving the button resets the
// progress, so an accidental click can never dismiss a ringing alarm.
type HoldButton struct {
	widget.BaseWidget
	Text        string
	OnComplete  func()
	holdSeconds int

	holding  bool
	hovered  bool
	progress float64
	ticker   *time.Ticker
}

func NewHoldButton(text string, holdSeconds int, onComplete func()) *HoldButton {
	if holdSeconds < 1 {
		holdSeconds = 1
	}
	b := &HoldButton{
		Text:        text,
		OnComplete:  onComplete,
		holdSeconds: holdSeconds,
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.ForegroundColor())
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.ButtonColor())
	progressBar := canvas.NewRectangle(theme.PrimaryColor())

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

func (b *HoldButton) Tapped(*fyne.PointEvent) {
	// Tapped fires on release, hold behavior is driven by MouseDown/MouseUp
}

func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {
}

func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {
}

func (b *HoldButton) MouseOut() {
	b.hovered = false
	b.stopHold()
	b.Refresh()
}

func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	if b.holding {
		return
	}
	b.holding = true
	b.progress = 0
	b.Refresh()
	b.startTicker()
}

func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.stopHold()
	b.Refresh()
}

func (b *HoldButton) startTicker() {
	tickInterval := 50 * time.Millisecond
	increment := float64(tickInterval) / float64(time.Duration(b.holdSeconds)*time.Second)

	b.ticker = time.NewTicker(tickInterval)
	ticker := b.ticker

	go func() {
		for range ticker.C {
			if !b.holding {
				return
			}

			b.progress += increment
			done := b.progress >= 1.0

			fyne.Do(func() {
				b.Refresh()
			})

			if done {
				ticker.Stop()
				if b.OnComplete != nil {
					b.OnComplete()
				}
				return
			}
		}
	}()
}

func (b *HoldButton) stopHold() {
	if !b.holding {
		return
	}
	b.holding = false
	if b.ticker != nil {
		b.ticker.Stop()
	}
	b.progress = 0
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress fills from left to right
	progressWidth := size.Width * float32(r.button.progress)
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := textSize.Width + theme.Padding()*4
	minHeight := textSize.Height + theme.Padding()*2

	if minWidth < 300 {
		minWidth = 300
	}
	if minHeight < 80 {
		minHeight = 80
	}

	return fyne.NewSize(minWidth, minHeight)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.ForegroundColor()

	if r.button.hovered {
		r.bg.FillColor = theme.HoverColor()
	} else {
		r.bg.FillColor = theme.ButtonColor()
	}

	size := r.bg.Size()
	progressWidth := size.Width * float32(r.button.progress)
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {
}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.ButtonColor()
}
