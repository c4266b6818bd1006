package stt

import (
	"context"
	"mime"
	"strings"
)

// Provider turns recorded speech into text. Confidence is in [0, 1].
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, contentType, language string) (text string, confidence float64, err error)
	Close() error
}

// mediaType strips parameters such as "codecs=opus" from a content type.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// Extension maps an audio content type to a file extension for archiving.
func Extension(contentType string) string {
	switch mediaType(contentType) {
	case "audio/webm", "video/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	default:
		return ".bin"
	}
}
