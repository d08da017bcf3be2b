package tui

// renderFooter renders the bottom help line. Collapsed by default, expanded
// to the full key reference when help is toggled on.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	text := "? for help"
	if app.showHelp {
		text = helpText
	}

	return StyleDim.Width(width).Render(text)
}
