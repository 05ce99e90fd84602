package models

import (
	"path"
	"strings"
)

// MediaKind distinguishes video from image content
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Video file extensions. Everything else renders as an image.
var videoExts = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".mov":  true,
}

// ClassifyMedia maps a filename or URL to its media kind based on the
// extension, case-insensitively. Query strings and fragments are stripped
// first so signed URLs classify the same as their bare filename.
func ClassifyMedia(nameOrURL string) MediaKind {
	s := nameOrURL
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if videoExts[strings.ToLower(path.Ext(s))] {
		return KindVideo
	}
	return KindImage
}
