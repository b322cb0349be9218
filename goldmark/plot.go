package goldmark

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/onbuch/tutor"
)

// RenderPlot prints a plot payload as its function name followed by a
// two-column table of points. Every stride-th point is shown; stride <= 1
// shows them all. The last point is always included.
func RenderPlot(p tutor.PlotResult, stride int, theme Theme) string {
	if stride < 1 {
		stride = 1
	}
	title := lipgloss.NewStyle().Foreground(color(theme.Accent)).Bold(true).Render(p.Function)

	rows := make([][]string, 0, len(p.Points)/stride+1)
	for i, pt := range p.Points {
		if i%stride != 0 && i != len(p.Points)-1 {
			continue
		}
		rows = append(rows, []string{formatCoord(pt.X), formatCoord(pt.Y)})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(color(theme.Muted))).
		Headers("x", "y").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return title + "\n" + t.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
