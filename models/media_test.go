package models

import "testing"

func TestClassifyMedia(t *testing.T) {
	cases := []struct {
		in   string
		want MediaKind
	}{
		{"clip.mp4", KindVideo},
		{"clip.MP4", KindVideo},
		{"clip.mov", KindVideo},
		{"intro.webm", KindVideo},
		{"loop.ogg", KindVideo},
		{"photo.jpg", KindImage},
		{"photo.PNG", KindImage},
		{"doc.pdf", KindImage},
		{"noext", KindImage},
		{"", KindImage},
		{"https://cdn.example.com/images/lobby/promo.mp4?sig=abc123", KindVideo},
		{"https://cdn.example.com/images/lobby/banner.jpg?sig=abc123", KindImage},
		{"clip.mp4#t=10", KindVideo},
	}
	for _, c := range cases {
		if got := ClassifyMedia(c.in); got != c.want {
			t.Errorf("ClassifyMedia(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
