package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/rgallery/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.DisclaimerVisible:
		return []string{"↵: accept", "q: quit"}
	case state.SearchActive:
		return []string{
			"type: search",
			"↵/Esc: done",
			"^U: clear",
		}
	case state.Picker.Active:
		return []string{
			"type: narrow",
			"↵/+: include",
			"-: exclude",
			"Esc: close",
		}
	case state.PreviewID != "":
		return []string{
			"Esc: close",
			"[]: history",
		}
	default:
		return []string{
			"/: search",
			"v/a: facets",
			"s: sort",
			"[]: history",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	if state.SearchActive || state.Picker.Active || state.DisclaimerVisible {
		return nil
	}

	segments := []string{}
	if state.ClipboardAvailable {
		segments = append(segments, "y: yank")
	}
	segments = append(segments, "?: help")

	return segments
}
