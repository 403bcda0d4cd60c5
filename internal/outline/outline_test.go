package outline

import (
	"encoding/json"
	"testing"

	"github.com/bytetechedu/bytetech/internal/api"
)

func wireLesson(id, title, mime, validator string) api.WireLesson {
	return api.WireLesson{
		ID:            json.Number(id),
		Title:         title,
		MIMEType:      mime,
		TimeValidator: json.Number(validator),
	}
}

func TestKindForMIME(t *testing.T) {
	cases := []struct {
		mime string
		want Kind
	}{
		{"video/mp4", KindVideo},
		{"video/webm", KindVideo},
		{"text/plain", KindText},
		{"application/pdf", KindText},
		{"image/png", KindText},
		{"", KindText},
	}
	for _, tc := range cases {
		if got := KindForMIME(tc.mime); got != tc.want {
			t.Errorf("KindForMIME(%q) = %v, want %v", tc.mime, got, tc.want)
		}
	}
}

func TestHydrateOrdersSectionKeys(t *testing.T) {
	content := &api.CourseContent{
		ID:   1,
		Name: "Go from zero",
		Content: map[string]api.WireSection{
			"10":    {ID: 10, Title: "ten"},
			"2":     {ID: 2, Title: "two"},
			"1":     {ID: 1, Title: "one"},
			"extra": {ID: 99, Title: "extra"},
			"bonus": {ID: 98, Title: "bonus"},
		},
	}

	out := Hydrate(content)

	var titles []string
	for _, sec := range out.Sections {
		titles = append(titles, sec.Title)
	}
	// numeric keys ascending, then non-numeric lexicographic
	want := []string{"one", "two", "ten", "bonus", "extra"}
	if len(titles) != len(want) {
		t.Fatalf("sections = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("sections = %v, want %v", titles, want)
		}
	}
}

func TestHydrateKeepsRawDwellSpec(t *testing.T) {
	content := &api.CourseContent{
		Content: map[string]api.WireSection{
			"1": {ID: 1, Title: "s", Lessons: []api.WireLesson{
				wireLesson("42", "intro", "video/mp4", "2.30"),
			}},
		},
	}

	out := Hydrate(content)
	l := out.Sections[0].Lessons[0]

	if l.ID != "42" {
		t.Errorf("ID = %q, want 42", l.ID)
	}
	if l.DwellSpec != "2.30" {
		t.Errorf("DwellSpec = %q, want the untouched wire text 2.30", l.DwellSpec)
	}
	if l.Kind != KindVideo {
		t.Errorf("Kind = %v, want video", l.Kind)
	}
}

func TestFirstSelectable(t *testing.T) {
	out := Outline{Sections: []Section{
		{Title: "empty"},
		{Title: "with lessons", Lessons: []Lesson{
			{ID: "a", Title: "first"},
			{ID: "b", Title: "second"},
		}},
	}}

	l, ok := FirstSelectable(out)
	if !ok || l.ID != "a" {
		t.Fatalf("FirstSelectable = (%v, %v), want lesson a", l.ID, ok)
	}

	if _, ok := FirstSelectable(Outline{}); ok {
		t.Fatal("empty outline has no selectable lesson")
	}
}

func TestSelectableIgnoresLockFlag(t *testing.T) {
	// the server declares locks but the client never enforces them
	if !Selectable(Lesson{Locked: true}) {
		t.Fatal("locked lessons are still selectable")
	}
}

func TestLessonCounts(t *testing.T) {
	out := Outline{Sections: []Section{
		{Lessons: []Lesson{{ID: "1", Completed: true}, {ID: "2"}}},
		{Lessons: []Lesson{{ID: "3", Completed: true}}},
	}}

	if got := out.TotalLessons(); got != 3 {
		t.Errorf("TotalLessons = %d, want 3", got)
	}
	if got := out.CompletedLessons(); got != 2 {
		t.Errorf("CompletedLessons = %d, want 2", got)
	}
}
