package service

import (
	"fmt"
	"strings"

	"github.com/agloo/themer/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// RenderSwatches draws the palette as two rows of eight coloured cells,
// normal colours above bright ones, each labelled with its hex code.
func RenderSwatches(p model.Palette) string {
	rows := make([]string, 0, 2)
	for row := 0; row < 2; row++ {
		cells := make([]string, 0, 8)
		for col := 0; col < 8; col++ {
			c := p[row*8+col]
			cells = append(cells, swatchStyle(c).Render(Hex(c)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderList draws one labelled swatch per line.
func RenderList(colors []model.RGB) string {
	var b strings.Builder
	for i, c := range colors {
		fmt.Fprintf(&b, "%3d %s #%s\n", i, swatchStyle(c).Render("      "), Hex(c))
	}
	return b.String()
}

func swatchStyle(c model.RGB) lipgloss.Style {
	fg := "#000000"
	if Luminance(c) < 3*128 {
		fg = "#ffffff"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#" + Hex(c))).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1)
}
