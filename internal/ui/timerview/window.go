package timerview

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tabatavox/internal/voice"
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnStart func()
	OnStop  func()
	OnReset func()
	// OnListen fires when the microphone is opened.
	OnListen func()
	// OnUtterance receives what the user said; OnListenTimeout fires when
	// the prompt is dismissed without an answer.
	OnUtterance     func(text string)
	OnListenTimeout func()
}

// Window is the main timer display.
type Window struct {
	window      fyne.Window
	phaseLabel  *canvas.Text
	timeLabel   *canvas.Text
	caption     *widget.Label
	startButton *widget.Button
	stopButton  *widget.Button
	resetButton *widget.Button
	micButton   *widget.Button
	callbacks   Callbacks
}

var phaseColors = map[string]color.NRGBA{
	"prep": {R: 232, G: 190, B: 66, A: 255},
	"work": {R: 220, G: 76, B: 70, A: 255},
	"rest": {R: 76, G: 175, B: 120, A: 255},
}

// New creates the timer window showing the initial phase and time.
func New(app fyne.App, phaseLabel string, seconds int, callbacks Callbacks) *Window {
	window := app.NewWindow("Tabata")

	phaseText := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	phaseText.Alignment = fyne.TextAlignCenter
	phaseText.TextStyle = fyne.TextStyle{Bold: true}
	phaseText.TextSize = 28

	timeText := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	timeText.Alignment = fyne.TextAlignCenter
	timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeText.TextSize = 72

	caption := widget.NewLabel("")
	caption.Alignment = fyne.TextAlignCenter
	caption.Wrapping = fyne.TextWrapWord

	view := &Window{
		window:     window,
		phaseLabel: phaseText,
		timeLabel:  timeText,
		caption:    caption,
		callbacks:  callbacks,
	}

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		call(view.callbacks.OnStart)
	})
	view.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		call(view.callbacks.OnStop)
	})
	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		call(view.callbacks.OnReset)
	})
	view.micButton = widget.NewButtonWithIcon("", theme.MediaRecordIcon(), view.listen)

	controls := container.NewHBox(
		layout.NewSpacer(),
		view.startButton,
		view.stopButton,
		view.resetButton,
		view.micButton,
		layout.NewSpacer(),
	)
	content := container.NewVBox(
		phaseText,
		timeText,
		controls,
		caption,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(360, 300))

	view.setTimeUnsafe(phaseLabel, seconds)
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without quitting.
func (view *Window) Hide() {
	view.window.Hide()
}

// SetCloseIntercept replaces the default close behaviour.
func (view *Window) SetCloseIntercept(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// SetCallbacks replaces the action handlers.
func (view *Window) SetCallbacks(callbacks Callbacks) {
	view.callbacks = callbacks
}

// OnTimeChanged updates the phase and time labels.
func (view *Window) OnTimeChanged(phaseLabel string, secondsRemaining int) {
	fyne.Do(func() {
		view.setTimeUnsafe(phaseLabel, secondsRemaining)
	})
}

// OnEnableControls enables the manual controls.
func (view *Window) OnEnableControls() {
	fyne.Do(func() {
		view.setControlsEnabledUnsafe(true)
	})
}

// OnDisableControls disables the manual controls while listening.
func (view *Window) OnDisableControls() {
	fyne.Do(func() {
		view.setControlsEnabledUnsafe(false)
	})
}

// Speak shows the prompt as a caption.
func (view *Window) Speak(text string, mode voice.Mode) {
	if mode == voice.ModeMarkup {
		text = voice.Flatten(text)
	}
	fyne.Do(func() {
		view.caption.SetText(text)
	})
}

func (view *Window) listen() {
	call(view.callbacks.OnListen)

	entry := widget.NewEntry()
	entry.SetPlaceHolder("start the timer")
	items := []*widget.FormItem{widget.NewFormItem("Say", entry)}
	dialog.ShowForm("Listening…", "Send", "Cancel", items, func(confirmed bool) {
		text := strings.TrimSpace(entry.Text)
		if !confirmed || text == "" {
			call(view.callbacks.OnListenTimeout)
			return
		}
		if view.callbacks.OnUtterance != nil {
			view.callbacks.OnUtterance(text)
		}
	}, view.window)
	view.window.Canvas().Focus(entry)
}

func (view *Window) setTimeUnsafe(phaseLabel string, seconds int) {
	view.phaseLabel.Text = strings.ToUpper(phaseLabel)
	if phaseColor, ok := phaseColors[phaseLabel]; ok {
		view.phaseLabel.Color = phaseColor
	}
	view.timeLabel.Text = formatSeconds(seconds)
	view.phaseLabel.Refresh()
	view.timeLabel.Refresh()
}

func (view *Window) setControlsEnabledUnsafe(enabled bool) {
	for _, button := range []*widget.Button{view.startButton, view.stopButton, view.resetButton, view.micButton} {
		if enabled {
			button.Enable()
		} else {
			button.Disable()
		}
	}
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
