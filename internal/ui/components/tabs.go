package components

import (
	"strings"

	"github.com/bytetechedu/bytetech/internal/ui/theme"
)

// Tabs renders a horizontal tab row with one active tab.
func Tabs(labels []string, active int) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if i == active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
