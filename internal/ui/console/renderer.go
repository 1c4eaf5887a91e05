package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"tabatavox/internal/voice"
)

// Theme defines the colors used per phase.
type Theme struct {
	Prep   lipgloss.Color
	Work   lipgloss.Color
	Rest   lipgloss.Color
	Prompt lipgloss.Color
	Dim    lipgloss.Color
}

// DefaultTheme matches the colors of the timer window.
var DefaultTheme = Theme{
	Prep:   lipgloss.Color("#e8be42"),
	Work:   lipgloss.Color("#dc4c46"),
	Rest:   lipgloss.Color("#4caf78"),
	Prompt: lipgloss.Color("#00ff9f"),
	Dim:    lipgloss.Color("#6e7681"),
}

// Styles holds the styles derived from a theme.
type Styles struct {
	Phases map[string]lipgloss.Style
	Time   lipgloss.Style
	Prompt lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme Theme) Styles {
	phase := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(c).Width(6)
	}
	return Styles{
		Phases: map[string]lipgloss.Style{
			"prep": phase(theme.Prep),
			"work": phase(theme.Work),
			"rest": phase(theme.Rest),
		},
		Time:   lipgloss.NewStyle().Bold(true),
		Prompt: lipgloss.NewStyle().Italic(true).Foreground(theme.Prompt),
		Help:   lipgloss.NewStyle().Foreground(theme.Dim),
	}
}

// Renderer prints timer updates and spoken prompts to a terminal.
// It satisfies the timer display, the dialogue controls and the voice engine.
type Renderer struct {
	mu       sync.Mutex
	out      io.Writer
	styles   Styles
	enabled  bool
	lastLine string
}

// New creates a renderer writing to out.
func New(out io.Writer, styles Styles) *Renderer {
	return &Renderer{
		out:     out,
		styles:  styles,
		enabled: true,
	}
}

// OnTimeChanged prints the phase and remaining time.
func (renderer *Renderer) OnTimeChanged(phaseLabel string, secondsRemaining int) {
	style, ok := renderer.styles.Phases[phaseLabel]
	if !ok {
		style = lipgloss.NewStyle().Width(6)
	}
	line := style.Render(strings.ToUpper(phaseLabel)) + " " + renderer.styles.Time.Render(formatSeconds(secondsRemaining))

	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	if line == renderer.lastLine {
		return
	}
	renderer.lastLine = line
	renderer.writeLocked(line)
}

// OnEnableControls resumes accepting typed commands.
func (renderer *Renderer) OnEnableControls() {
	renderer.setEnabled(true)
}

// OnDisableControls marks the input as busy while an utterance is handled.
func (renderer *Renderer) OnDisableControls() {
	renderer.setEnabled(false)
}

// Enabled reports whether controls are currently enabled.
func (renderer *Renderer) Enabled() bool {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	return renderer.enabled
}

// Say prints a prompt in place of audio playback.
func (renderer *Renderer) Say(ctx context.Context, text string, mode voice.Mode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mode == voice.ModeMarkup {
		text = voice.Flatten(text)
	}

	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	renderer.writeLocked(renderer.styles.Prompt.Render("» " + text))
	return nil
}

// Help prints the usage hint.
func (renderer *Renderer) Help() {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	renderer.writeLocked(renderer.styles.Help.Render(`say "start", "stop" or "reset"; empty line cancels; Ctrl-D quits`))
}

func (renderer *Renderer) setEnabled(enabled bool) {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	renderer.enabled = enabled
}

func (renderer *Renderer) writeLocked(line string) {
	_, _ = fmt.Fprintln(renderer.out, line)
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
