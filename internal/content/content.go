// Package content picks the rendering strategy for a lesson's
// attached file.
package content

import "strings"

// Strategy is the single rendering path chosen for a lesson.
type Strategy int

const (
	// StrategyNone renders a "no file attached" placeholder.
	StrategyNone Strategy = iota
	// StrategyImage references the media URL as an image.
	StrategyImage
	// StrategyVideo references the media URL as a video source with
	// the declared MIME type.
	StrategyVideo
	// StrategyPDF embeds the media URL as a document frame.
	StrategyPDF
	// StrategyText fetches the file body and renders it verbatim.
	StrategyText
	// StrategyDownload offers a generic open/download link.
	StrategyDownload
)

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyImage:
		return "image"
	case StrategyVideo:
		return "video"
	case StrategyPDF:
		return "pdf"
	case StrategyText:
		return "text"
	case StrategyDownload:
		return "download"
	}
	return "unknown"
}

// EmptyTextPlaceholder is rendered verbatim when a text file's body is
// empty.
const EmptyTextPlaceholder = "(empty text file)"

// Select chooses exactly one strategy from the lesson's file reference
// and MIME type, evaluated in fixed order: no file, image/*, video/*,
// application/pdf, text/*, everything else.
func Select(fileID, mimeType string) Strategy {
	switch {
	case fileID == "":
		return StrategyNone
	case strings.HasPrefix(mimeType, "image/"):
		return StrategyImage
	case strings.HasPrefix(mimeType, "video/"):
		return StrategyVideo
	case mimeType == "application/pdf":
		return StrategyPDF
	case strings.HasPrefix(mimeType, "text/"):
		return StrategyText
	default:
		return StrategyDownload
	}
}

// NeedsFetch reports whether the strategy requires a separate body
// fetch (only text previews do; other media are referenced by URL).
func (s Strategy) NeedsFetch() bool {
	return s == StrategyText
}
