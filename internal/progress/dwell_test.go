package progress

import (
	"testing"
	"time"
)

func TestParseDwell(t *testing.T) {
	cases := []struct {
		spec string
		want time.Duration
	}{
		{"", 0},
		{"0", 0},
		{"2", 2 * time.Minute},
		{"2.30", 2*time.Minute + 30*time.Second},
		{"2.3", 2*time.Minute + 3*time.Second},
		{"3.45", 3*time.Minute + 45*time.Second},
		// seconds clamp to 59 rather than spilling into minutes
		{"3.99", 3*time.Minute + 59*time.Second},
		// extra fractional digits beyond two are ignored
		{"1.234", 1*time.Minute + 23*time.Second},
		{"10.05", 10*time.Minute + 5*time.Second},
		{"abc", 0},
		{"-1.30", 0},
		{"2.xy", 2 * time.Minute},
		{" 4.10 ", 4*time.Minute + 10*time.Second},
	}

	for _, tc := range cases {
		if got := ParseDwell(tc.spec); got != tc.want {
			t.Errorf("ParseDwell(%q) = %v, want %v", tc.spec, got, tc.want)
		}
	}
}

func TestParseDwellKeepsTrailingZero(t *testing.T) {
	// "2.30" must mean 2m30s. A float64 round trip would shorten it to
	// "2.3" and change the meaning to 2m3s.
	if got := ParseDwell("2.30"); got != 150*time.Second {
		t.Fatalf("ParseDwell(\"2.30\") = %v, want 2m30s", got)
	}
}
