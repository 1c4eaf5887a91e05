package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	cycles       *widget.Entry
	prep         *widget.Entry
	work         *widget.Entry
	rest         *widget.Entry
	voiceEnabled *widget.Check
	voiceCommand *widget.Entry
	status       *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Tabata Settings")

	cycles := widget.NewEntry()
	prep := widget.NewEntry()
	work := widget.NewEntry()
	rest := widget.NewEntry()
	voiceEnabled := widget.NewCheck("Speak prompts", nil)
	voiceCommand := widget.NewEntry()
	voiceCommand.SetPlaceHolder("espeak-ng")
	status := widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Intervals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Cycles"), cycles),
		container.NewHBox(widget.NewLabel("Prepare"), prep, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Work"), work, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Rest"), rest, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Voice", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		voiceEnabled,
		container.NewHBox(widget.NewLabel("Synthesizer"), voiceCommand),
		status,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 380))

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		cycles:       cycles,
		prep:         prep,
		work:         work,
		rest:         rest,
		voiceEnabled: voiceEnabled,
		voiceCommand: voiceCommand,
		status:       status,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.cycles.SetText(strconv.Itoa(settings.Timer.Cycles))
	prefs.prep.SetText(strconv.Itoa(settings.Timer.Prep))
	prefs.work.SetText(strconv.Itoa(settings.Timer.Work))
	prefs.rest.SetText(strconv.Itoa(settings.Timer.Rest))
	prefs.voiceEnabled.SetChecked(settings.VoiceEnabled)
	prefs.voiceCommand.SetText(settings.VoiceCommand)
	prefs.status.SetText("")
}

func (prefs *Window) handleSave() {
	settings, err := prefs.collect()
	if err != nil {
		prefs.status.SetText(err.Error())
		return
	}

	prefs.settings = settings
	prefs.status.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() (Settings, error) {
	settings := prefs.settings

	cycles, ok := parsePositiveInt(prefs.cycles.Text)
	if !ok {
		return settings, fmt.Errorf("cycles must be a positive number")
	}
	prep, ok := parseNonNegativeInt(prefs.prep.Text)
	if !ok {
		return settings, fmt.Errorf("prepare must be zero or more seconds")
	}
	work, ok := parsePositiveInt(prefs.work.Text)
	if !ok {
		return settings, fmt.Errorf("work must be a positive number of seconds")
	}
	rest, ok := parseNonNegativeInt(prefs.rest.Text)
	if !ok {
		return settings, fmt.Errorf("rest must be zero or more seconds")
	}

	settings.Timer.Cycles = cycles
	settings.Timer.Prep = prep
	settings.Timer.Work = work
	settings.Timer.Rest = rest
	settings.VoiceEnabled = prefs.voiceEnabled.Checked
	if command := strings.TrimSpace(prefs.voiceCommand.Text); command != "" {
		settings.VoiceCommand = command
	}
	return settings, settings.Timer.Validate()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
