// Package history shows the session log as a bar chart and exports it.
package history

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"

	"deepwork/internal/core/model"
	"deepwork/internal/stats"
	"deepwork/internal/storage"
	"deepwork/internal/ui/apptheme"
	"deepwork/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
)

// NoDataMessage is shown instead of the chart when the log is empty.
const NoDataMessage = "No data available."

// Show opens the statistics window, or an information dialog on parent when the log is empty.
func Show(app fyne.App, parent fyne.Window, log storage.SessionLog, settings preferences.Settings, logger zerolog.Logger) {
	records, err := log.Records(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("read session log")
		dialog.ShowError(err, parent)
		return
	}
	if len(records) == 0 {
		dialog.ShowInformation("Statistics", NoDataMessage, parent)
		return
	}

	window := app.NewWindow("Statistics")
	summary := stats.Summarize(records)
	bars := stats.Bars(records)

	header := widget.NewLabel(fmt.Sprintf("%d sessions: %d min of work, %d min of break",
		summary.Sessions, summary.WorkMinutes, summary.BreakMinutes))

	exportButton := widget.NewButton("Export", func() {
		showExportDialog(window, log, logger)
	})

	chart := newChart(bars, settings)
	scroll := container.NewHScroll(chart)

	window.SetContent(container.NewBorder(header, container.NewHBox(exportButton), nil, nil, scroll))
	window.Resize(fyne.NewSize(640, 420))
	window.Show()
}

func showExportDialog(window fyne.Window, log storage.SessionLog, logger zerolog.Logger) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := exportToChosenFile(context.Background(), log, path); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("export session log")
			dialog.ShowError(err, window)
			return
		}
		logger.Info().Str("path", path).Msg("session log exported")
		dialog.ShowInformation("Export", "Data exported to "+path, window)
	}, window)
	save.SetFileName("deepwork_log.json")
	save.SetFilter(fynestorage.NewExtensionFileFilter([]string{".csv", ".json"}))
	save.Show()
}

// exportToChosenFile exports to a file the save dialog already created. An unsupported
// extension removes that file again.
func exportToChosenFile(ctx context.Context, log storage.SessionLog, path string) error {
	if err := storage.CheckExportPath(path); err != nil {
		if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			return errors.Join(err, removeErr)
		}
		return err
	}
	return storage.Export(ctx, log, path)
}

func newChart(bars []stats.Bar, settings preferences.Settings) *fyne.Container {
	highest := stats.MaxMinutes(bars)
	objects := make([]fyne.CanvasObject, 0, len(bars)*3)
	textColor := apptheme.ParseHex(settings.Colors.BtnText)
	if !settings.Dark() {
		textColor = color.NRGBA{A: 255}
	}

	for _, bar := range bars {
		column := canvas.NewRectangle(barColor(bar.Phase, settings))

		value := canvas.NewText(fmt.Sprintf("%d", bar.Minutes), textColor)
		value.Alignment = fyne.TextAlignCenter
		value.TextSize = 11

		label := canvas.NewText(bar.Label, textColor)
		label.Alignment = fyne.TextAlignCenter
		label.TextSize = 11

		objects = append(objects, column, value, label)
	}

	return container.New(&chartLayout{bars: bars, highest: highest}, objects...)
}

func barColor(phase model.Phase, settings preferences.Settings) color.Color {
	if phase == model.PhaseBreak {
		return apptheme.ParseHex(settings.Colors.BreakBg)
	}
	return apptheme.ParseHex(settings.Colors.WorkBtn)
}
