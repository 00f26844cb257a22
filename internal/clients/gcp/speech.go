package gcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/iamvtyagi/flashLearn/internal/logger"
)

// Speech transcribes audio already uploaded to GCS. Each transcription is a
// single LongRunningRecognize call; errors propagate to the caller without
// retry so the pipeline fails the job in one pass.
type Speech interface {
	Transcribe(ctx context.Context, gcsURI string) (string, error)
	Close() error
}

type speechService struct {
	log    *logger.Logger
	client *speech.Client
}

func NewSpeech(log *logger.Logger) (Speech, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "gcp.Speech")

	ctx := context.Background()
	opts := ClientOptionsFromEnv()

	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	return &speechService{
		log:    slog,
		client: c,
	}, nil
}

func (s *speechService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *speechService) Transcribe(ctx context.Context, gcsURI string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if !strings.HasPrefix(gcsURI, "gs://") {
		return "", fmt.Errorf("gcsURI must be gs://... got %q", gcsURI)
	}

	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
			Encoding:                   inferSpeechEncoding(gcsURI),
		},
		Audio: &speechpb.RecognitionAudio{AudioSource: &speechpb.RecognitionAudio_Uri{Uri: gcsURI}},
	}

	op, err := s.client.LongRunningRecognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech longrunningrecognize: %w", err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("speech longrunningrecognize wait: %w", err)
	}

	var full strings.Builder
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		t := strings.TrimSpace(r.Alternatives[0].Transcript)
		if t == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(t)
	}

	text := strings.TrimSpace(full.String())
	if text == "" {
		return "", fmt.Errorf("speech returned no transcript for %q", gcsURI)
	}
	return text, nil
}

func inferSpeechEncoding(gcsURI string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToLower(filepath.Ext(gcsURI)) {
	case ".wav":
		return speechpb.RecognitionConfig_LINEAR16
	case ".flac":
		return speechpb.RecognitionConfig_FLAC
	case ".mp3":
		return speechpb.RecognitionConfig_MP3
	case ".ogg", ".opus":
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
