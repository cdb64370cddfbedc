package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/scfsim/internal/check"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Width(34)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

func renderReport(outcomes []check.Outcome) string {
	var b strings.Builder
	for i, o := range outcomes {
		if i > 0 {
			b.WriteByte('\n')
		}
		status := passStyle.Render("PASS")
		if !o.Passed() {
			status = failStyle.Render("FAIL")
		}
		b.WriteString(status + " " + nameStyle.Render(o.Name) + dimStyle.Render(o.Elapsed.Round(time.Microsecond).String()))
		if !o.Passed() {
			b.WriteString("\n     " + dimStyle.Render(o.Err.Error()))
		}
	}

	failed := check.Failed(outcomes)
	summary := passStyle.Render(fmt.Sprintf("%d passed", len(outcomes)-failed))
	if failed > 0 {
		summary += ", " + failStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	b.WriteString("\n\n" + summary)
	return reportStyle.Render(b.String())
}
