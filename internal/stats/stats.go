// Package stats aggregates the session log for display.
package stats

import (
	"sort"

	"deepwork/internal/core/model"
)

// DayTotal holds the minutes logged on one calendar day.
type DayTotal struct {
	Date         string
	WorkMinutes  int
	BreakMinutes int
}

// Summary totals a session log.
type Summary struct {
	Sessions      int
	WorkSessions  int
	BreakSessions int
	WorkMinutes   int
	BreakMinutes  int
	Days          []DayTotal
}

// Bar is one column of the history chart.
type Bar struct {
	Label   string
	Phase   model.Phase
	Minutes int
}

// Summarize totals records per phase and per local calendar day.
func Summarize(records []model.SessionRecord) Summary {
	summary := Summary{Sessions: len(records)}
	days := make(map[string]*DayTotal)

	for _, record := range records {
		date := record.Timestamp.Local().Format("2006-01-02")
		day, ok := days[date]
		if !ok {
			day = &DayTotal{Date: date}
			days[date] = day
		}

		if record.Phase == model.PhaseBreak {
			summary.BreakSessions++
			summary.BreakMinutes += record.DurationMinutes
			day.BreakMinutes += record.DurationMinutes
		} else {
			summary.WorkSessions++
			summary.WorkMinutes += record.DurationMinutes
			day.WorkMinutes += record.DurationMinutes
		}
	}

	summary.Days = make([]DayTotal, 0, len(days))
	for _, day := range days {
		summary.Days = append(summary.Days, *day)
	}
	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date < summary.Days[j].Date
	})
	return summary
}

// Bars returns one bar per record in log order.
func Bars(records []model.SessionRecord) []Bar {
	bars := make([]Bar, 0, len(records))
	for _, record := range records {
		bars = append(bars, Bar{
			Label:   record.Phase.Label(),
			Phase:   record.Phase,
			Minutes: record.DurationMinutes,
		})
	}
	return bars
}

// MaxMinutes returns the tallest bar, or zero for an empty chart.
func MaxMinutes(bars []Bar) int {
	highest := 0
	for _, bar := range bars {
		if bar.Minutes > highest {
			highest = bar.Minutes
		}
	}
	return highest
}
