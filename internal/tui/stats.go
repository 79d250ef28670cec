package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mentaljournal/internal/journal"
	"github.com/sadopc/mentaljournal/internal/store"
)

const statsDays = 7

type statsModel struct {
	proj   *journal.Projection
	width  int
	height int

	offset int // 7-day blocks back from today (0 = current)
	days   []journal.DaySummary

	chart barchart.Model
}

func newStatsModel(proj *journal.Projection) statsModel {
	return statsModel{
		proj:  proj,
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.rebuild()
}

func (s statsModel) lastDay() time.Time {
	return time.Now().AddDate(0, 0, -statsDays*s.offset)
}

// rebuild recomputes the summaries and the chart from the projection.
func (s *statsModel) rebuild() {
	s.days = journal.Daily(s.proj.Entries(), s.lastDay(), statsDays)
	s.buildChart()
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		s.offset++
		s.rebuild()
	case key.Matches(keyMsg, keys.Right):
		if s.offset > 0 {
			s.offset--
			s.rebuild()
		}
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if s.height > 30 {
		chartHeight = 14
	}

	s.chart = barchart.New(chartWidth, chartHeight, barchart.WithMaxValue(store.MoodMax))

	var bars []barchart.BarData
	for _, d := range s.days {
		style := lipgloss.NewStyle().Foreground(moodColor(d.AvgMood()))
		bars = append(bars, barchart.BarData{
			Label: d.Day.Format("02.01"),
			Values: []barchart.BarValue{{
				Name:  "Stimmung",
				Value: d.AvgMood(),
				Style: style,
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func moodColor(avg float64) lipgloss.Color {
	switch {
	case avg == 0:
		return colorSubtle
	case avg < 2.5:
		return colorError
	case avg < 3.5:
		return colorWarning
	}
	return colorSuccess
}

func (s statsModel) view() string {
	w := s.width - 4

	if len(s.days) == 0 {
		return panelStyle.Width(w).Render(mutedStyle.Render("Noch keine Daten."))
	}

	from, to := s.days[0].Day, s.days[len(s.days)-1].Day
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s bis %s", from.Format("02.01."), to.Format("02.01.2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Statistik"), "  ", dateLabel,
	)

	streak := s.proj.Streak(time.Now())
	totals := lipgloss.JoinHorizontal(lipgloss.Top,
		successStyle.Render(fmt.Sprintf("🔥 %d %s in Folge", streak, dayWord(streak))),
		"   ",
		normalItemStyle.Render(fmt.Sprintf("📓 %d Einträge", s.proj.Len())),
		"   ",
		warningStyle.Render(fmt.Sprintf("★ %d Favoriten", s.proj.Favorites())),
	)

	nav := mutedStyle.Render("  ←/→: Woche wechseln")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", totals, "",
			subtitleStyle.Render("Durchschnittliche Stimmung"),
			s.chart.View(), "",
			s.renderTable(w), "", nav,
		),
	)
}

func (s statsModel) renderTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s %10s %10s", "Tag", "Einträge", "Stimmung", "Favoriten")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	for _, d := range s.days {
		mood := "-"
		if avg := d.AvgMood(); avg > 0 {
			mood = fmt.Sprintf("%.1f", avg)
		}
		rows = append(rows, fmt.Sprintf("  %-12s %8d %10s %10d",
			d.Day.Format("Mon 02.01."), d.Entries, mood, d.Favorites,
		))
	}
	return strings.Join(rows, "\n")
}
