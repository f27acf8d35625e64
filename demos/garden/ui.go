package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/bloom/garden"
	"github.com/phanxgames/bloom/layout"
)

var (
	colorPink = lipgloss.Color("205")
	colorGold = lipgloss.Color("220")
	colorDim  = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	styleKind   = lipgloss.NewStyle().Width(16)
	styleNumber = lipgloss.NewStyle().Foreground(colorGold).Width(6).Align(lipgloss.Right)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

// printSummary writes one block per composed scene: the viewport, the
// scale, the element count of every kind present and the depth layers.
func printSummary(w io.Writer, scenes []*garden.Scene) {
	for i, s := range scenes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%s %gx%g", s.Name, s.Viewport.Width, s.Viewport.Height)))
		fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("scale %.2f, %d elements", float64(s.Scale), len(s.Elements))))

		counts := s.Counts()
		for _, k := range layout.Kinds {
			n, ok := counts[k]
			if !ok {
				continue
			}
			fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
				styleKind.Render(k.String()), styleNumber.Render(fmt.Sprint(n))))
		}

		zs := s.ZSet()
		depths := make([]string, 0, len(zs))
		for _, z := range zs {
			depths = append(depths, fmt.Sprint(z))
		}
		fmt.Fprintln(w, styleDim.Render("depths "+strings.Join(depths, " ")))
	}
}
