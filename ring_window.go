package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/hotkey"

	"github.com/borgmon/weekday-alarm/pkg/audio"
	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/platform"
)

// RingWindow is the fullscreen takeover shown while an alarm rings. The sound
// loops and Cmd+Q is swallowed until the dismiss button has been held down,
// so the alarm cannot be silenced by reflex.
type RingWindow struct {
	window     fyne.Window
	app        fyne.App
	alarm      models.Alarm
	timeLayout string
	onDismiss  func()

	audioPlayer    *audio.Player
	stopMonitoring chan struct{}

	hkMu       sync.Mutex
	cmdQHotkey *hotkey.Hotkey
	hkClosed   bool
}

func NewRingWindow(app fyne.App, alarm models.Alarm, holdSeconds int, timeLayout string, onDismiss func()) *RingWindow {
	rw := &RingWindow{
		app:            app,
		alarm:          alarm,
		timeLayout:     timeLayout,
		onDismiss:      onDismiss,
		stopMonitoring: make(chan struct{}),
	}

	rw.audioPlayer = audio.PlayRingSound(audio.Data(alarm.Sound))

	// Create window and build UI on the main Fyne thread
	fyne.Do(func() {
		rw.window = app.NewWindow("Weekday Alarm")
		rw.window.SetFullScreen(true)
		rw.buildUI(holdSeconds)

		rw.registerCmdQPrevention()
		rw.setupFocusMonitoring()

		rw.window.SetOnClosed(func() {
			close(rw.stopMonitoring)

			if rw.audioPlayer != nil {
				rw.audioPlayer.Stop()
			}
			if hk := rw.dropHotkey(true); hk != nil {
				hk.Unregister()
			}
			if rw.onDismiss != nil {
				rw.onDismiss()
			}
		})
	})

	return rw
}

func (rw *RingWindow) buildUI(holdSeconds int) {
	label := canvas.NewText(rw.alarm.Label, nil)
	label.TextSize = 32
	label.Alignment = fyne.TextAlignCenter

	timeText := canvas.NewText(rw.alarm.Time.Format(rw.timeLayout), nil)
	timeText.TextSize = 64
	timeText.Alignment = fyne.TextAlignCenter

	repeatInfo := "One time"
	if rw.alarm.RepeatsWeekly {
		repeatInfo = "Every " + weekdayName(rw.alarm.Weekday)
	}
	repeatLabel := widget.NewLabel(repeatInfo)
	repeatLabel.Alignment = fyne.TextAlignCenter

	dismissButton := NewHoldButton(fmt.Sprintf("Dismiss (Hold %ds)", holdSeconds), holdSeconds, func() {
		fyne.Do(func() {
			rw.window.Close()
		})
	})

	content := container.NewVBox(
		container.NewPadded(timeText),
		container.NewPadded(label),
		repeatLabel,
		widget.NewSeparator(),
		container.NewCenter(dismissButton),
	)

	rw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func (rw *RingWindow) Show() {
	fyne.Do(func() {
		if rw.window != nil {
			rw.window.Show()
		}
	})
}

func (rw *RingWindow) registerCmdQPrevention() {
	go func() {
		hk := hotkey.New([]hotkey.Modifier{hotkey.ModCmd}, hotkey.KeyQ)
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register Cmd+Q hotkey prevention: %v", err)
			return
		}
		if !rw.storeHotkey(hk) {
			// Window already closed, or another registration won the race
			hk.Unregister()
			return
		}

		// Consume Cmd+Q events while the alarm rings
		for range hk.Keydown() {
			log.Println("Cmd+Q blocked - hold the Dismiss button to stop the alarm")
		}
	}()
}

// storeHotkey publishes the registered hotkey. Returns false once the window
// has closed or a hotkey is already held, in which case the caller must
// unregister its own.
func (rw *RingWindow) storeHotkey(hk *hotkey.Hotkey) bool {
	rw.hkMu.Lock()
	defer rw.hkMu.Unlock()
	if rw.hkClosed || rw.cmdQHotkey != nil {
		return false
	}
	rw.cmdQHotkey = hk
	return true
}

// dropHotkey takes ownership of the current hotkey, if any. Passing final
// also blocks any future registration.
func (rw *RingWindow) dropHotkey(final bool) *hotkey.Hotkey {
	rw.hkMu.Lock()
	defer rw.hkMu.Unlock()
	if final {
		rw.hkClosed = true
	}
	hk := rw.cmdQHotkey
	rw.cmdQHotkey = nil
	return hk
}

func (rw *RingWindow) hotkeyActive() bool {
	rw.hkMu.Lock()
	defer rw.hkMu.Unlock()
	return rw.cmdQHotkey != nil
}

func (rw *RingWindow) setupFocusMonitoring() {
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		wasFocused := true
		for {
			select {
			case <-rw.stopMonitoring:
				return
			case <-ticker.C:
				if rw.window == nil {
					return
				}

				isFocused := platform.IsAppActive()

				if wasFocused && !isFocused {
					if hk := rw.dropHotkey(false); hk != nil {
						hk.Unregister()
					}
				} else if !wasFocused && isFocused {
					if !rw.hotkeyActive() {
						rw.registerCmdQPrevention()
					}
				}

				// A ringing alarm always stays in front
				if !isFocused {
					platform.ActivateApp()
					fyne.Do(func() {
						if rw.window != nil {
							rw.window.Show()
						}
					})
				}

				wasFocused = isFocused
			}
		}
	}()
}
