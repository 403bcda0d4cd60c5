package content

import "testing"

func TestSelect(t *testing.T) {
	cases := []struct {
		name     string
		fileID   string
		mimeType string
		want     Strategy
	}{
		{"no file", "", "video/mp4", StrategyNone},
		{"image", "f1", "image/png", StrategyImage},
		{"video", "f2", "video/mp4", StrategyVideo},
		{"webm", "f3", "video/webm", StrategyVideo},
		{"pdf", "f4", "application/pdf", StrategyPDF},
		{"plain text", "f5", "text/plain", StrategyText},
		{"markdown", "f6", "text/markdown", StrategyText},
		{"other", "f7", "application/zip", StrategyDownload},
		{"empty mime", "f8", "", StrategyDownload},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Select(tc.fileID, tc.mimeType); got != tc.want {
				t.Errorf("Select(%q, %q) = %v, want %v", tc.fileID, tc.mimeType, got, tc.want)
			}
		})
	}
}

func TestSelectOrderFileBeforeMIME(t *testing.T) {
	// a missing file wins over any MIME type
	if got := Select("", "image/png"); got != StrategyNone {
		t.Fatalf("Select with empty file = %v, want StrategyNone", got)
	}
}

func TestNeedsFetch(t *testing.T) {
	if !StrategyText.NeedsFetch() {
		t.Fatal("text strategy must fetch its body")
	}
	for _, s := range []Strategy{StrategyNone, StrategyImage, StrategyVideo, StrategyPDF, StrategyDownload} {
		if s.NeedsFetch() {
			t.Errorf("%v should not need a fetch", s)
		}
	}
}
