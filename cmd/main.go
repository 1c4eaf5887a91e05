package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName = "tabatavox"
	appID   = "com.tabatavox.app"
)

// options holds flags shared by every command.
type options struct {
	configPath   string
	debug        bool
	noVoice      bool
	voiceCommand string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Voice-controlled Tabata interval timer",
		Long:          "Counts down prep, work and rest phases and accepts spoken start, stop and reset commands.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default: <user config dir>/tabatavox/settings.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noVoice, "no-voice", false, "do not speak prompts aloud")
	flags.StringVar(&opts.voiceCommand, "voice-command", "", "speech synthesizer binary (default: espeak-ng, or say on macOS)")

	root.AddCommand(newConsoleCommand(opts))
	return root
}
