package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Uploader archives a blob and returns where it was stored.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// AnswerAudioObject names the recording of one answer. Re-recording the same
// question overwrites the earlier take.
func AnswerAudioObject(code string, questionIndex int, ext string) string {
	return path.Join("answers", safeSegment(code), fmt.Sprintf("%d%s", questionIndex, ext))
}

// CandidateSheetObject names an uploaded candidate list. Every upload is kept.
func CandidateSheetObject(interviewID, filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("imports", safeSegment(interviewID), fmt.Sprintf("%d%s", at.UnixNano(), ext))
}

func safeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(s)
	if s == "" {
		return "_"
	}
	return s
}
