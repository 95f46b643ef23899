package main

import (
	"errors"
	"fmt"

	"deepwork/internal/core/timekeeper"
	"deepwork/internal/platform"
	"deepwork/internal/ui/apptheme"
	"deepwork/internal/ui/history"
	"deepwork/internal/ui/mainview"
	"deepwork/internal/ui/mini"
	"deepwork/internal/ui/preferences"
	"deepwork/internal/ui/tray"
	"deepwork/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Start the desktop timer",
	Long:  `Start the desktop timer with its main window, mini widget and system tray menu.`,
	RunE:  runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

// desktopUI owns the windows of the desktop front-end and routes their callbacks.
type desktopUI struct {
	app         fyne.App
	service     *services
	keeper      *timekeeper.TimeKeeper
	mainWindow  *mainview.Window
	miniWindow  *mini.Window
	prefsWindow *preferences.Window
	trayManager *tray.Manager
}

func runGUI(cmd *cobra.Command, args []string) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info().Msg("DeepWork is already running, bringing it forward")
		return platform.ActivateRunningInstance(appName)
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	service, err := openServices(options, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	fyneApp := app.NewWithID("com.deepwork.app")
	fyneApp.SetIcon(resources.MustLogo(resources.LogoIdle))
	fyneApp.Settings().SetTheme(apptheme.New(service.settings.Dark()))

	alerts := mainview.NewAlerts(fyneApp, nil)
	keeper := service.newKeeper(timekeeper.CuePlayers{service.soundPlayer(), alerts}, alerts)
	defer keeper.Close()

	ui := &desktopUI{app: fyneApp, service: service, keeper: keeper}
	ui.build(alerts)
	defer ui.close()

	go guard.Serve(func() {
		fyne.Do(ui.showMain)
	})

	logger.Info().
		Str("version", version).
		Str("data_dir", options.DataDir).
		Msg("Starting DeepWork")

	ui.mainWindow.Show()
	fyneApp.Run()

	logger.Info().Msg("DeepWork stopped")
	return nil
}

func (ui *desktopUI) build(alerts *mainview.Alerts) {
	settings := ui.service.store.Current()

	ui.mainWindow = mainview.New(ui.app, ui.keeper, settings, mainview.Callbacks{
		OnStatistics:  ui.showStatistics,
		OnMini:        ui.toggleMini,
		OnPreferences: ui.showPreferences,
		OnTheme:       ui.setTheme,
		OnToggleTheme: ui.toggleTheme,
		OnQuit:        ui.quit,
	}, fmt.Sprintf("DeepWork %s\nAlternating work and break timer.", version))
	ui.mainWindow.Window().SetMaster()
	ui.mainWindow.Window().SetCloseIntercept(ui.quit)
	alerts.SetParent(ui.mainWindow.Window())

	ui.miniWindow = mini.New(ui.app, ui.mainWindow, settings)
	ui.prefsWindow = preferences.New(ui.app, settings, ui.applySettings)

	desktopApp, ok := ui.app.(desktop.App)
	if !ok {
		ui.service.logger.Info().Msg("System tray unsupported on this platform")
		return
	}
	ui.trayManager = tray.New(desktopApp, tray.Callbacks{
		OnToggleTimer: func() { fyne.Do(ui.mainWindow.Toggle) },
		OnMini:        ui.toggleMini,
		OnShowMain:    ui.showMain,
		OnPreferences: ui.showPreferences,
		OnQuit:        ui.quit,
	})
	ui.trayManager.SetIcons(resources.MustLogo(resources.LogoIdle), resources.MustLogo(resources.LogoActive))
	ui.keeper.Subscribe(ui.trayManager)
}

// applySettings persists preferences edited in the preferences window and
// pushes them to every surface.
func (ui *desktopUI) applySettings(settings preferences.Settings) {
	if err := ui.service.store.Save(settings); err != nil {
		ui.service.logger.Error().Err(err).Msg("Failed to save preferences")
		dialog.ShowError(err, ui.mainWindow.Window())
	}
	ui.refresh(settings)
	if err := ui.keeper.UpdateConfig(settings.TimerConfig()); err != nil {
		ui.service.logger.Warn().Err(err).Msg("Ignoring invalid durations")
	}
}

func (ui *desktopUI) setTheme(mode string) {
	ui.updateSettings(func(settings preferences.Settings) preferences.Settings {
		settings.Theme = mode
		return settings
	})
}

func (ui *desktopUI) toggleTheme() {
	ui.updateSettings(preferences.Settings.ToggleTheme)
}

func (ui *desktopUI) updateSettings(change func(preferences.Settings) preferences.Settings) {
	updated, err := ui.service.store.Update(change)
	if err != nil {
		ui.service.logger.Error().Err(err).Msg("Failed to save preferences")
		dialog.ShowError(err, ui.mainWindow.Window())
	}
	ui.refresh(updated)
	ui.prefsWindow.UpdateSettings(updated)
}

func (ui *desktopUI) refresh(settings preferences.Settings) {
	ui.app.Settings().SetTheme(apptheme.New(settings.Dark()))
	ui.mainWindow.ApplySettings(settings)
	ui.miniWindow.ApplySettings(settings)
}

func (ui *desktopUI) showStatistics() {
	history.Show(ui.app, ui.mainWindow.Window(), ui.service.log, ui.service.store.Current(), ui.service.logger)
}

func (ui *desktopUI) showPreferences() {
	ui.prefsWindow.UpdateSettings(ui.service.store.Current())
	ui.prefsWindow.Show()
}

func (ui *desktopUI) toggleMini() {
	ui.miniWindow.ToggleVisible()
}

func (ui *desktopUI) showMain() {
	ui.mainWindow.Show()
}

func (ui *desktopUI) quit() {
	ui.keeper.Stop()
	ui.app.Quit()
}

func (ui *desktopUI) close() {
	ui.mainWindow.Close()
}
