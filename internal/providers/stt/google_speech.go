package stt

import (
	"context"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
)

type GoogleSpeech struct {
	c *speech.Client
}

func NewGoogleSpeech(ctx context.Context) (*GoogleSpeech, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GoogleSpeech{c: c}, nil
}

func (g *GoogleSpeech) Close() error { return g.c.Close() }

// recognitionConfig picks the encoding for what browsers and uploads send.
// WAV and FLAC carry their sample rate in the header.
func recognitionConfig(contentType, language string) *speechpb.RecognitionConfig {
	cfg := &speechpb.RecognitionConfig{
		LanguageCode:               language,
		EnableAutomaticPunctuation: true,
	}
	switch mediaType(contentType) {
	case "audio/webm", "video/webm":
		cfg.Encoding = speechpb.RecognitionConfig_WEBM_OPUS
		cfg.SampleRateHertz = 48000
	case "audio/ogg":
		cfg.Encoding = speechpb.RecognitionConfig_OGG_OPUS
		cfg.SampleRateHertz = 48000
	case "audio/flac", "audio/x-flac":
		cfg.Encoding = speechpb.RecognitionConfig_FLAC
	case "audio/wav", "audio/x-wav", "audio/wave":
		cfg.Encoding = speechpb.RecognitionConfig_LINEAR16
	default:
		cfg.Encoding = speechpb.RecognitionConfig_LINEAR16
		cfg.SampleRateHertz = 16000
	}
	return cfg
}

// language example: "en-US", "en-IN"
func (g *GoogleSpeech) Transcribe(ctx context.Context, audio []byte, contentType, language string) (string, float64, error) {
	if language == "" {
		language = "en-US"
	}

	resp, err := g.c.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: recognitionConfig(contentType, language),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", 0, err
	}

	// results are consecutive segments; join the top alternative of each
	var (
		text    string
		confSum float64
		n       int
	)
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 || r.Alternatives[0].Transcript == "" {
			continue
		}
		alt := r.Alternatives[0]
		if text != "" {
			text += " "
		}
		text += alt.Transcript
		confSum += float64(alt.Confidence)
		n++
	}
	if n == 0 {
		return "", 0, nil
	}
	return text, confSum / float64(n), nil
}
