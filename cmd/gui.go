package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/afero"

	"tabatavox/internal/core/dialogue"
	"tabatavox/internal/core/tabata"
	"tabatavox/internal/platform"
	"tabatavox/internal/speech"
	"tabatavox/internal/storage"
	"tabatavox/internal/ui/preferences"
	"tabatavox/internal/ui/timerview"
	"tabatavox/internal/ui/tray"
	"tabatavox/internal/voice"
)

func runGUI(ctx context.Context, opts *options) error {
	logger := newLogger(os.Stderr, opts.debug)

	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = lock.Release()
	}()

	fs := afero.NewOsFs()
	settings, configPath, err := loadSettings(fs, opts, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fyneApp := app.NewWithID(appID)

	var manager *dialogue.Manager
	engine := &voice.SwitchEngine{}
	engine.Set(selectEngine(settings, logger))
	queue := voice.NewQueue(engine, voice.QueueConfig{
		Logger: logger,
		Listener: voice.ListenerFunc(func(event voice.Event) {
			manager.OnVoiceEvent(event)
		}),
	})

	view := timerview.New(fyneApp, tabata.PhasePrep.Label(), settings.Timer.Prep, timerview.Callbacks{})
	speaker := voice.Multi(queue, view)

	desktopApp, hasTray := fyneApp.(desktop.App)
	var trayManager *tray.Manager

	buildTimer := func(current preferences.Settings) (*tabata.Timer, error) {
		timer, err := tabata.New(current.TimerSettings(), tabata.Options{
			Display: view,
			Speaker: speaker,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
		if trayManager != nil {
			go followTimer(timer, trayManager)
		}
		return timer, nil
	}

	// current is only touched on the fyne main goroutine.
	current, err := buildTimer(settings)
	if err != nil {
		return fmt.Errorf("create timer: %w", err)
	}

	manager, err = dialogue.New(dialogue.Config{
		Timer:    current,
		Speaker:  speaker,
		Controls: view,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("create dialogue manager: %w", err)
	}

	start := func() { manager.Timer().Start() }
	stop := func() { manager.Timer().Stop() }
	reset := func() { manager.Timer().Reset() }

	view.SetCallbacks(timerview.Callbacks{
		OnStart: start,
		OnStop:  stop,
		OnReset: reset,
		OnListen: func() {
			manager.OnSpeechEvent(speech.Activated())
		},
		OnUtterance: func(text string) {
			manager.OnSpeechEvent(speech.Recognized(text))
			manager.OnSpeechEvent(speech.Deactivated())
		},
		OnListenTimeout: func() {
			manager.OnSpeechEvent(speech.TimedOut())
		},
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(fs, configPath, updated); err != nil {
			logger.Error("save settings", "path", configPath, "error", err)
		}
		next, err := buildTimer(updated)
		if err != nil {
			logger.Error("apply settings", "error", err)
			return
		}
		engine.Set(selectEngine(updated, logger))
		manager.SetTimer(next)
		current.Close()
		current = next
		next.Reset()
		logReady(logger, configPath, next)
	})

	quit := func() {
		current.Close()
		cancel()
		fyneApp.Quit()
	}

	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        view.Show,
			OnStart:       start,
			OnStop:        stop,
			OnReset:       reset,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		go followTimer(current, trayManager)
		view.SetCloseIntercept(view.Hide)
	} else {
		logger.Info("system tray unsupported; closing the window quits")
		view.SetCloseIntercept(quit)
	}

	go func() {
		_ = queue.Run(ctx)
	}()

	logReady(logger, configPath, current)
	view.Show()
	fyneApp.Run()
	return nil
}

func logReady(logger *slog.Logger, configPath string, timer *tabata.Timer) {
	settings := timer.Settings()
	logger.Info("timer ready", "config", configPath, "cycles", settings.Cycles,
		"prep", settings.Prep, "work", settings.Work, "rest", settings.Rest,
		"total_seconds", settings.TotalSeconds())
}

// followTimer mirrors timer events in the tray until the timer is closed.
func followTimer(timer *tabata.Timer, trayManager *tray.Manager) {
	cycles := timer.Settings().Cycles
	for event := range timer.Subscribe(16) {
		running := event.Type != tabata.EventStopped &&
			event.Type != tabata.EventReset &&
			event.Type != tabata.EventSessionDone
		status := statusLine(event, cycles)
		fyne.Do(func() {
			trayManager.SetRunning(running)
			trayManager.SetStatus(status)
		})
	}
}
