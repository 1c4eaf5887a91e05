package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tabatavox/internal/core/dialogue"
	"tabatavox/internal/core/tabata"
	"tabatavox/internal/speech"
	"tabatavox/internal/ui/console"
	"tabatavox/internal/voice"
)

func newConsoleCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run the timer in the terminal, one spoken command per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runConsole(ctx, opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runConsole(ctx context.Context, opts *options, in io.Reader, out, errOut io.Writer) error {
	logger := newLogger(errOut, opts.debug)

	settings, configPath, err := loadSettings(afero.NewOsFs(), opts, logger)
	if err != nil {
		return err
	}

	renderer := console.New(out, console.NewStyles(console.DefaultTheme))

	var manager *dialogue.Manager
	listener := voice.ListenerFunc(func(event voice.Event) {
		manager.OnVoiceEvent(event)
	})
	captions := voice.NewQueue(renderer, voice.QueueConfig{Logger: logger, Listener: listener})
	speakers := []voice.Speaker{captions}
	var audio *voice.Queue
	if engine := selectEngine(settings, logger); engine != nil {
		audio = voice.NewQueue(engine, voice.QueueConfig{Logger: logger, Listener: listener})
		speakers = append(speakers, audio)
	}
	speaker := voice.Multi(speakers...)

	timer, err := tabata.New(settings.TimerSettings(), tabata.Options{
		Display: renderer,
		Speaker: speaker,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create timer: %w", err)
	}
	defer timer.Close()

	manager, err = dialogue.New(dialogue.Config{
		Timer:    timer,
		Speaker:  speaker,
		Controls: renderer,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("create dialogue manager: %w", err)
	}

	logReady(logger, configPath, timer)
	renderer.Help()
	renderer.OnTimeChanged(timer.DefaultPhaseLabel(), timer.DefaultSeconds())

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return captions.Run(groupCtx)
	})
	if audio != nil {
		group.Go(func() error {
			return audio.Run(groupCtx)
		})
	}

	group.Go(func() error {
		err := speech.NewConsoleSource(in).Run(groupCtx, manager)
		// no more prompts once the timer is closed; let the queues drain
		timer.Close()
		captions.Close()
		if audio != nil {
			audio.Close()
		}
		return err
	})

	return group.Wait()
}
