package layout

// Demo returns the built-in three-page layout sized for a w x h screen. Sizes
// are fractions of the screen so the same layout works in pixels and in
// terminal cells.
func Demo(w, h int) *Layout {
	bh := max(h/8, 3)
	bw := max(w/5, 8)
	gap := max(w/40, 1)
	row := func(i int) int { return gap + i*(bw+gap) }

	l := &Layout{
		Pager: Pager{Kind: KindDots, Pages: 3, Fill: "black"},
		Buttons: []Button{
			{
				Page: 0, Rect: []int{row(0), 1, bw, bh}, Label: "File", Priority: 4,
				Fill: "blue", Text: "white", Outline: "white", Highlight: "cyan",
				Menu: []MenuItem{
					{Label: "New"},
					{Label: "Open"},
					{Label: "Open recent", Disabled: true},
					{Label: "Save"},
					{Label: "Save as"},
					{Label: "Revert", Disabled: true},
					{Label: "Print"},
					{Label: "Close"},
					{Label: "Quit"},
				},
			},
			{Page: 0, Rect: []int{row(1), 1, bw, bh}, Label: "Play", Priority: 1, Fill: "green", Text: "black"},
			{Page: 0, Rect: []int{row(2), 1, bw, bh}, Label: "Stop", Priority: 2, Fill: "red", Text: "white"},
			{
				Page: 1, Rect: []int{row(0), 1, bw, bh}, Label: "View", Priority: 4,
				Fill: "magenta", Text: "white", Outline: "white", Highlight: "grey",
				Menu: []MenuItem{
					{Label: "Grid", Checked: true, Toggle: true},
					{Label: "Rulers", Toggle: true},
					{Label: "Status bar", Checked: true, Toggle: true},
				},
			},
			{Page: 1, Rect: []int{row(1), 1, bw, bh}, Label: "Zoom in", Priority: 1, Fill: "darkgrey", Text: "yellow"},
			{Page: 1, Rect: []int{row(2), 1, bw, bh}, Label: "Zoom out", Priority: 2, Fill: "darkgrey", Text: "yellow"},
			{Page: 2, Rect: []int{row(0), 1, bw * 2, bh}, Label: "About", Priority: 1, Fill: "cyan", Text: "black"},
		},
	}
	return l
}
