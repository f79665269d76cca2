package upload

import (
	"slices"
	"strings"
)

// Category describes what an upload slot accepts and where admitted files go
type Category struct {
	Name       string
	Dir        string
	Extensions []string
	MIMEPrefix string
	MIMETypes  []string
	MaxSize    int64
}

func VideoCategory(maxSize int64) Category {
	return Category{
		Name:       "video",
		Dir:        "videos",
		Extensions: []string{".mp4", ".avi", ".mov", ".wmv", ".flv", ".mkv", ".webm"},
		MIMEPrefix: "video/",
		MaxSize:    maxSize,
	}
}

func PresentationCategory(maxSize int64) Category {
	return Category{
		Name:       "presentation",
		Dir:        "ppts",
		Extensions: []string{".ppt", ".pptx", ".pdf"},
		MIMETypes: []string{
			"application/vnd.ms-powerpoint",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation",
			"application/pdf",
		},
		MaxSize: maxSize,
	}
}

// Accepts reports whether either the extension or the MIME type is allowed
func (c Category) Accepts(ext, mimeType string) bool {
	if slices.Contains(c.Extensions, strings.ToLower(ext)) {
		return true
	}

	if mimeType == "" {
		return false
	}

	if c.MIMEPrefix != "" && strings.HasPrefix(mimeType, c.MIMEPrefix) {
		return true
	}

	return slices.Contains(c.MIMETypes, mimeType)
}
