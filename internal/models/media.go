package models

import (
	"io"
	"strings"
)

// MediaKind classifies an uploaded asset.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaPDF   MediaKind = "pdf"
	MediaOther MediaKind = "other"
)

// ClassifyMedia maps a MIME type to its media kind. Unknown types are MediaOther.
func ClassifyMedia(mimeType string) MediaKind {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return MediaImage
	case strings.HasPrefix(mimeType, "video/"):
		return MediaVideo
	case mimeType == "application/pdf":
		return MediaPDF
	default:
		return MediaOther
	}
}

// Valid reports whether k is one of the known kinds.
func (k MediaKind) Valid() bool {
	switch k {
	case MediaImage, MediaVideo, MediaPDF, MediaOther:
		return true
	}
	return false
}

// Media references one stored asset of a post.
type Media struct {
	URL  string    `json:"url" bson:"url"`
	Type MediaKind `json:"type" bson:"type"`
}

// Upload is a file received from a client, not yet stored.
type Upload struct {
	Filename    string
	ContentType string // as declared by the client
	File        io.ReadSeeker
}
