package services

import (
	"bytes"
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/stt"
	"github.com/AtharvaKhot17/QuickHireAI/internal/storage"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

const MaxAudioBytes = 10 << 20

type AudioInput struct {
	Code          string
	QuestionIndex int
	Data          []byte
	ContentType   string
	Language      string
}

type Transcription struct {
	Text       string
	Confidence float64 // 0..10
	AudioURI   string
}

// AudioService transcribes spoken answers and archives the recording.
type AudioService interface {
	Transcribe(ctx context.Context, in AudioInput) (*Transcription, error)
}

type audioService struct {
	stt      stt.Provider
	uploader storage.Uploader // optional
	log      *logrus.Logger
}

func NewAudioService(p stt.Provider, uploader storage.Uploader, log *logrus.Logger) AudioService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &audioService{stt: p, uploader: uploader, log: log}
}

func (s *audioService) Transcribe(ctx context.Context, in AudioInput) (*Transcription, error) {
	const op = "AudioService.Transcribe"

	if s.stt == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "speech recognition is not configured", nil)
	}
	if len(in.Data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "audio is required", nil)
	}
	if len(in.Data) > MaxAudioBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, "audio exceeds 10MB", nil)
	}

	out := &Transcription{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, conf, err := s.stt.Transcribe(gctx, in.Data, in.ContentType, in.Language)
		if err != nil {
			return utils.E(utils.CodeUnavailable, op, "speech recognition failed", err)
		}
		out.Text = text
		out.Confidence = conf * 10
		return nil
	})
	if s.uploader != nil {
		g.Go(func() error {
			object := storage.AnswerAudioObject(in.Code, in.QuestionIndex, stt.Extension(in.ContentType))
			uri, err := s.uploader.Upload(gctx, object, in.ContentType, bytes.NewReader(in.Data))
			if err != nil {
				s.log.WithError(err).WithField("code", in.Code).Warn("failed to archive answer audio")
				return nil
			}
			out.AudioURI = uri
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
