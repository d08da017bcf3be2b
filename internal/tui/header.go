package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"stackshift/internal/model"
)

// renderHeader renders the top header bar with portfolio name, tier status,
// and timing info.
//
// Layout:
//
//	left:   "stackshift · <portfolio>" (or "Loading <origin>..." before the first fetch)
//	center: most pressing tier present, e.g. "● 2 URGENT" (or "● DISCONNECTED  <error>" when offline)
//	right:  "Last: HH:MM:SS  Watch: Ns" (or the retry countdown when offline)
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	disconnected := app.connState == stateDisconnected

	var left, center, right string

	if app.portfolio == nil {
		// No successful fetch yet — initial loading state.
		origin := ""
		if app.src != nil {
			origin = app.src.Origin()
		}
		left = "Loading " + sanitize(origin) + "..."

		if disconnected && app.lastError != nil {
			center = StyleError.Render("● DISCONNECTED  " + sanitize(classifyError(app.lastError)))
			right = StyleError.Render(retryCountdown(app.nextRetryAt))
		}
	} else {
		// Have at least one portfolio — show evaluation info.
		name := app.portfolio.Name
		if name == "" && app.src != nil {
			name = app.src.Origin()
		}
		left = "stackshift · " + sanitize(name)

		if disconnected {
			// Lost the source after a successful fetch.
			errDisplay := "● DISCONNECTED"
			if app.lastError != nil {
				errDisplay += "  " + sanitize(classifyError(app.lastError))
			}
			center = StyleError.Render(errDisplay)
			right = StyleError.Render(retryCountdown(app.nextRetryAt))
		} else {
			center = headerStatus(app)

			lastStr := "..."
			if !app.lastUpdated.IsZero() {
				lastStr = app.lastUpdated.Format("15:04:05")
			}
			if app.watchInterval > 0 {
				right = StyleDim.Render(fmt.Sprintf("Last: %s  Watch: %s", lastStr, formatDuration(app.watchInterval)))
			} else {
				right = StyleDim.Render("Last: " + lastStr)
			}
		}
	}

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2

	// Degrade on narrow terminals: shrink the name zone first, then drop the
	// right zone, then the error detail. The header never wraps.
	if lipgloss.Width(left)+lipgloss.Width(center)+lipgloss.Width(right)+2 > innerWidth {
		avail := innerWidth - lipgloss.Width(center) - lipgloss.Width(right) - 2
		if avail < 0 {
			avail = 0
		}
		left = truncateName(left, avail)
	}
	if lipgloss.Width(left)+lipgloss.Width(center)+lipgloss.Width(right) > innerWidth {
		right = ""
	}
	if lipgloss.Width(center) > innerWidth && disconnected {
		center = StyleError.Render("● DISCONNECTED")
	}

	// Build row: left + padding + center + padding + right, filling innerWidth.
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// headerStatus summarizes the portfolio for the header's center zone: the
// count at the most pressing tier present, or ALL STAY when nothing needs
// to move.
func headerStatus(app *App) string {
	s := app.summary
	for tier := model.MigrateUrgently; tier > model.StayOnCurrentStack; tier-- {
		if n := s.CountFor(tier); n > 0 {
			return tierStyle(tier).Render(fmt.Sprintf("● %d %s", n, tier.Short()))
		}
	}
	return tierStyle(model.StayOnCurrentStack).Render("● ALL STAY")
}

// classifyError maps a fetch error onto a short human-readable label for the
// header. Unrecognized errors pass through, truncated to 40 characters.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized"):
		return "Authentication failed (401)"
	case strings.Contains(lower, "403") || strings.Contains(lower, "forbidden"):
		return "Authentication failed (403)"
	case strings.Contains(lower, "context deadline exceeded") || strings.Contains(lower, "timeout"):
		return "Timeout"
	case isTLSError(err):
		return "TLS error"
	}
	if len(msg) > 40 {
		return msg[:40] + "..."
	}
	return msg
}

// isTLSError reports whether err looks like a TLS or certificate problem.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "tls") ||
		strings.Contains(lower, "x509") ||
		strings.Contains(lower, "certificate")
}

// retryCountdown renders the right-zone text while disconnected: a live
// countdown to the next automatic retry, or a manual-retry hint when none
// is scheduled.
func retryCountdown(nextRetryAt time.Time) string {
	if nextRetryAt.IsZero() {
		return "Press r to retry"
	}
	remaining := time.Until(nextRetryAt)
	if remaining <= 0 {
		return "Retrying..."
	}
	secs := int(remaining.Round(time.Second).Seconds())
	return fmt.Sprintf("Retrying in %ds  (r: retry now)", secs)
}

// formatDuration formats a watch interval as a compact string, e.g. "30s",
// "2m", or "1m30s".
func formatDuration(d time.Duration) string {
	if d >= time.Minute {
		m := int(d.Minutes())
		s := int((d % time.Minute).Seconds())
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// sanitize strips ANSI escape sequences and control characters from strings
// that originate outside the process, so a hostile service name cannot
// corrupt the terminal.
func sanitize(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == 0x1b { // ESC
			if i+1 >= len(runes) {
				break // lone ESC at end
			}
			switch runes[i+1] {
			case '[': // CSI: skip to final byte in 0x40–0x7E
				i++
				for i+1 < len(runes) {
					i++
					if runes[i] >= 0x40 && runes[i] <= 0x7e {
						break
					}
				}
			case ']': // OSC: skip to BEL or ST (ESC \)
				i++
				for i+1 < len(runes) {
					i++
					if runes[i] == 0x07 {
						break
					}
					if runes[i] == 0x1b && i+1 < len(runes) && runes[i+1] == '\\' {
						i++
						break
					}
				}
			default: // single-character escape
				i++
			}
			continue
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			continue // C0, DEL, and C1 controls
		}
		out.WriteRune(r)
	}
	return out.String()
}
