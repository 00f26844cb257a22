package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

// State names the position of a Job in the pipeline. Transitions are linear;
// Failed is reachable from every non-terminal state.
type State string

const (
	StateReceived     State = "received"
	StateExtracting   State = "extracting"
	StateUploading    State = "uploading"
	StateTranscribing State = "transcribing"
	StateGenerating   State = "generating"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Extractor produces a local audio file for a video reference.
type Extractor interface {
	Extract(ctx context.Context, videoURL string) (*Extraction, error)
}

// Uploader moves bytes to durable storage and returns the public URL and the
// storage URI the transcriber reads from.
type Uploader interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (publicURL string, uri string, err error)
}

// Transcriber turns an uploaded audio object into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, uri string) (string, error)
}

// Generator turns free-form text into a question set.
type Generator interface {
	Generate(ctx context.Context, text string) (types.QuestionSet, error)
}

// Job is the single-request value threaded through the stages. It is never
// persisted; any local file it creates is removed on every exit path.
type Job struct {
	Source     string
	State      State
	Transcript string
	AudioURL   string
	AudioURI   string
	Questions  types.QuestionSet

	extraction *Extraction
}

// Result is what a completed job hands back to the HTTP boundary.
type Result struct {
	AudioURL   string
	Transcript string
	Questions  types.QuestionSet
}

type stage struct {
	state State
	code  Code
	run   func(ctx context.Context, job *Job) error
}

// Orchestrator sequences the stages for one job and owns the cleanup
// invariants around the local audio file.
type Orchestrator struct {
	log         *logger.Logger
	extractor   Extractor
	uploader    Uploader
	transcriber Transcriber
	generator   Generator
}

func NewOrchestrator(
	log *logger.Logger,
	extractor Extractor,
	uploader Uploader,
	transcriber Transcriber,
	generator Generator,
) *Orchestrator {
	return &Orchestrator{
		log:         log.With("service", "Orchestrator"),
		extractor:   extractor,
		uploader:    uploader,
		transcriber: transcriber,
		generator:   generator,
	}
}

// ProcessVideo runs the full chain: extract audio, upload it, transcribe the
// uploaded copy, generate questions from the transcript. The local audio file
// is deleted right after the upload is confirmed, and on every failure or
// cancellation path by the deferred cleanup.
func (o *Orchestrator) ProcessVideo(ctx context.Context, source string) (*Result, error) {
	if strings.TrimSpace(source) == "" {
		return nil, NewError(CodeInvalidReference, errors.New("video reference is required"))
	}

	job := &Job{Source: source, State: StateReceived}
	defer func() { job.extraction.Cleanup() }()

	stages := []stage{
		{StateExtracting, CodeExtractionFailed, o.runExtract},
		{StateUploading, CodeUploadFailed, o.runUpload},
		{StateTranscribing, CodeTranscriptionFailed, o.runTranscribe},
		{StateGenerating, CodeGenerationFailed, o.runGenerate},
	}
	if err := o.advance(ctx, job, stages); err != nil {
		return nil, err
	}

	job.State = StateCompleted
	return &Result{
		AudioURL:   job.AudioURL,
		Transcript: job.Transcript,
		Questions:  job.Questions,
	}, nil
}

// ProcessText is the document path: extracted text goes straight to the
// generation stage, skipping extraction, upload, and transcription.
func (o *Orchestrator) ProcessText(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewError(CodeInvalidReference, errors.New("source text is required"))
	}

	job := &Job{Transcript: text, State: StateReceived}
	if err := o.advance(ctx, job, []stage{
		{StateGenerating, CodeGenerationFailed, o.runGenerate},
	}); err != nil {
		return nil, err
	}

	job.State = StateCompleted
	return &Result{Transcript: job.Transcript, Questions: job.Questions}, nil
}

func (o *Orchestrator) advance(ctx context.Context, job *Job, stages []stage) error {
	for _, st := range stages {
		job.State = st.state
		if err := st.run(ctx, job); err != nil {
			job.State = StateFailed
			var perr *Error
			if !errors.As(err, &perr) {
				err = NewError(st.code, err)
			}
			o.log.Error("Pipeline stage failed", "stage", string(st.state), "error", err)
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runExtract(ctx context.Context, job *Job) error {
	ex, err := o.extractor.Extract(ctx, job.Source)
	if err != nil {
		return err
	}
	job.extraction = ex
	return nil
}

func (o *Orchestrator) runUpload(ctx context.Context, job *Job) error {
	f, err := os.Open(job.extraction.Path)
	if err != nil {
		return fmt.Errorf("open extracted audio: %w", err)
	}

	key := fmt.Sprintf("audio/%s.mp3", filepath.Base(filepath.Dir(job.extraction.Path)))
	publicURL, uri, err := o.uploader.Upload(ctx, key, f, "audio/mpeg")
	f.Close()
	if err != nil {
		return err
	}

	// The local copy goes away only now that the remote copy is confirmed.
	job.extraction.Cleanup()
	job.extraction = nil

	job.AudioURL = publicURL
	job.AudioURI = uri
	return nil
}

func (o *Orchestrator) runTranscribe(ctx context.Context, job *Job) error {
	text, err := o.transcriber.Transcribe(ctx, job.AudioURI)
	if err != nil {
		return err
	}
	job.Transcript = text
	return nil
}

func (o *Orchestrator) runGenerate(ctx context.Context, job *Job) error {
	set, err := o.generator.Generate(ctx, job.Transcript)
	if err != nil {
		return err
	}
	job.Questions = set
	return nil
}
