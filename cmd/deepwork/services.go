package main

import (
	"fmt"
	"path/filepath"

	"deepwork/internal/audio"
	"deepwork/internal/config"
	"deepwork/internal/core/timekeeper"
	"deepwork/internal/storage"
	"deepwork/internal/ui/preferences"

	"github.com/rs/zerolog"
)

// services are the stores shared by every front-end.
type services struct {
	options  *config.Options
	store    *storage.SettingsStore
	settings preferences.Settings
	log      storage.SessionLog
	logger   zerolog.Logger
}

func openServices(options *config.Options, logger zerolog.Logger) (*services, error) {
	store := storage.NewSettingsStore(filepath.Join(options.DataDir, storage.SettingsFileName))
	settings, err := store.Load()
	if err != nil {
		// Unreadable preferences are not fatal: the store already fell back to defaults.
		logger.Warn().Err(err).Str("path", store.Path()).Msg("Using default preferences")
	}

	sessionLog, err := storage.OpenSessionLog(options.SessionLog.Backend, options.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}

	logger.Debug().
		Str("preferences", store.Path()).
		Str("backend", options.SessionLog.Backend).
		Msg("Services opened")

	return &services{
		options:  options,
		store:    store,
		settings: settings,
		log:      sessionLog,
		logger:   logger,
	}, nil
}

func (service *services) soundPlayer() *audio.Player {
	return audio.NewPlayer(map[timekeeper.Cue]string{
		timekeeper.CueWorkEnd:  service.options.Sounds.WorkEnd,
		timekeeper.CueBreakEnd: service.options.Sounds.BreakEnd,
	}, service.logger)
}

func (service *services) newKeeper(cues timekeeper.CuePlayer, notifier timekeeper.Notifier) *timekeeper.TimeKeeper {
	return timekeeper.New(
		service.settings.TimerConfig(),
		timekeeper.Config{TickInterval: service.options.Timer.TickInterval},
		timekeeper.Collaborators{
			Recorder:    service.log,
			Cues:        cues,
			ConfigSaver: service.store,
			Notifier:    notifier,
		},
		service.logger,
	)
}

func (service *services) Close() {
	if err := service.log.Close(); err != nil {
		service.logger.Error().Err(err).Msg("Failed to close session log")
	}
}
