package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rominabarouti/FacilityGraph/pkg/health"
	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// renderSummary prints the run statistics as a boxed table. Colour is used
// only when w is a terminal.
func renderSummary(w io.Writer, input string, rep topology.Report, quality health.Response, outputs []outcome) error {
	r := lipgloss.NewRenderer(w)

	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	key := r.NewStyle().Width(16).Foreground(lipgloss.Color("#666666"))
	warn := r.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	bad := r.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	box := r.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#00FF00")).
		Padding(0, 1)

	row := func(k string, v any) string {
		return key.Render(k) + fmt.Sprint(v)
	}
	count := func(n int) string {
		if n > 0 {
			return warn.Render(fmt.Sprint(n))
		}
		return "0"
	}

	lines := []string{
		title.Render("FacilityGraph"),
		row("Model", input),
		row("Spaces", spacesText(rep.Extract)),
		row("Missing area", count(rep.Extract.MissingArea)),
		row("Missing volume", count(rep.Extract.MissingVolume)),
		row("Nodes", rep.Nodes),
		row("Edges", fmt.Sprintf("%d (%d contains, %d adjacent)",
			rep.Edges, rep.Containment.ContainsEdges, rep.Adjacency.Edges)),
		row("Boundaries", fmt.Sprintf("%d groups, %d virtual, %d skipped",
			rep.Boundaries.Groups, rep.Boundaries.Virtual, rep.Boundaries.Skipped)),
		row("Quality", qualityText(quality, warn, bad)),
		row("Duration", rep.Duration.Round(time.Millisecond)),
	}
	for _, o := range outputs {
		v := o.dest
		if o.bytes > 0 {
			v = fmt.Sprintf("%s (%d bytes)", o.dest, o.bytes)
		}
		lines = append(lines, row("Wrote "+o.kind, v))
	}

	_, err := fmt.Fprintln(w, box.Render(strings.Join(lines, "\n")))
	return err
}

// qualityText is the overall status followed by the checks that are not
// healthy, e.g. "degraded (adjacency, quantities)".
func qualityText(resp health.Response, warn, bad lipgloss.Style) string {
	var failing []string
	for name, c := range resp.Checks {
		if c.Status != health.StatusHealthy {
			failing = append(failing, name)
		}
	}
	sort.Strings(failing)
	text := string(resp.Status)
	if len(failing) > 0 {
		text += " (" + strings.Join(failing, ", ") + ")"
	}
	switch resp.Status {
	case health.StatusDegraded:
		return warn.Render(text)
	case health.StatusUnhealthy:
		return bad.Render(text)
	}
	return text
}

func spacesText(stats topology.ExtractStats) string {
	if stats.CorridorSpaces == 0 {
		return fmt.Sprint(stats.Spaces)
	}
	return fmt.Sprintf("%d (%d corridor)", stats.Spaces, stats.CorridorSpaces)
}
