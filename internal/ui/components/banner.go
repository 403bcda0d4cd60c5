package components

import (
	"github.com/bytetechedu/bytetech/internal/ui/theme"
)

// ErrorBanner renders a dismissable error line. Empty text renders
// nothing so callers can emit it unconditionally.
func ErrorBanner(text string, width int) string {
	if text == "" {
		return ""
	}
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	return theme.ErrorBanner.Width(inner).Render("! " + text)
}
