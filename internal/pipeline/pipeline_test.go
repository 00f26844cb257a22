package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

type fakeExtractor struct {
	t    *testing.T
	err  error
	dirs []string
	mu   sync.Mutex
}

func (f *fakeExtractor) Extract(ctx context.Context, videoURL string) (*Extraction, error) {
	if f.err != nil {
		return nil, f.err
	}
	videoID, ok := ParseVideoID(videoURL)
	if !ok {
		return nil, NewError(CodeInvalidReference, fmt.Errorf("no video id in %q", videoURL))
	}
	dir, err := os.MkdirTemp(f.t.TempDir(), videoID+"-*")
	if err != nil {
		f.t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, videoID+".mp3")
	if err := os.WriteFile(path, []byte("mp3"), 0o644); err != nil {
		f.t.Fatalf("write audio: %v", err)
	}
	f.mu.Lock()
	f.dirs = append(f.dirs, dir)
	f.mu.Unlock()
	return &Extraction{VideoID: videoID, Path: path}, nil
}

type fakeUploader struct {
	err   error
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", "", err
	}
	return "https://cdn.example.com/" + key, "gs://bucket/" + key, nil
}

type fakeTranscriber struct {
	err   error
	text  string
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, uri string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeGenerator struct {
	err   error
	set   types.QuestionSet
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, text string) (types.QuestionSet, error) {
	f.calls++
	if f.err != nil {
		return types.QuestionSet{}, f.err
	}
	return f.set, nil
}

func validSet() types.QuestionSet {
	set := types.QuestionSet{Title: "Test Quiz"}
	for i := 0; i < types.QuestionCount; i++ {
		set.Questions = append(set.Questions, types.Question{
			Question: fmt.Sprintf("Question %d?", i+1),
			Options: map[types.OptionKey]string{
				"A": "one", "B": "two", "C": "three", "D": "four",
			},
			CorrectAnswer: "B",
			Explanation:   "because",
		})
	}
	return set
}

func newTestOrchestrator(t *testing.T, ext Extractor, up Uploader, tr Transcriber, gen Generator) *Orchestrator {
	t.Helper()
	return NewOrchestrator(logger.NewNop(), ext, up, tr, gen)
}

func assertDirsGone(t *testing.T, dirs []string) {
	t.Helper()
	for _, dir := range dirs {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("job dir still present: %s", dir)
		}
	}
}

func TestProcessVideoHappyPath(t *testing.T) {
	ext := &fakeExtractor{t: t}
	up := &fakeUploader{}
	tr := &fakeTranscriber{text: "a transcript"}
	gen := &fakeGenerator{set: validSet()}
	o := newTestOrchestrator(t, ext, up, tr, gen)

	res, err := o.ProcessVideo(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ProcessVideo: %v", err)
	}
	if res.AudioURL == "" {
		t.Fatalf("audio url: want non-empty")
	}
	if res.Transcript != "a transcript" {
		t.Fatalf("transcript: want=%q got=%q", "a transcript", res.Transcript)
	}
	if len(res.Questions.Questions) != types.QuestionCount {
		t.Fatalf("questions: want=%d got=%d", types.QuestionCount, len(res.Questions.Questions))
	}
	assertDirsGone(t, ext.dirs)
}

func TestProcessVideoInvalidReference(t *testing.T) {
	ext := &fakeExtractor{t: t}
	up := &fakeUploader{}
	tr := &fakeTranscriber{}
	gen := &fakeGenerator{}
	o := newTestOrchestrator(t, ext, up, tr, gen)

	_, err := o.ProcessVideo(context.Background(), "not-a-url")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("want *Error, got %T (%v)", err, err)
	}
	if perr.Code != CodeInvalidReference {
		t.Fatalf("code: want=%q got=%q", CodeInvalidReference, perr.Code)
	}
	if up.calls != 0 || tr.calls != 0 || gen.calls != 0 {
		t.Fatalf("later stages ran: upload=%d transcribe=%d generate=%d", up.calls, tr.calls, gen.calls)
	}
	if len(ext.dirs) != 0 {
		t.Fatalf("temp dirs created for invalid reference: %v", ext.dirs)
	}
}

func TestProcessVideoStageFailuresCleanUp(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name     string
		mutate   func(*fakeUploader, *fakeTranscriber, *fakeGenerator)
		wantCode Code
	}{
		{"upload", func(u *fakeUploader, _ *fakeTranscriber, _ *fakeGenerator) { u.err = boom }, CodeUploadFailed},
		{"transcribe", func(_ *fakeUploader, tr *fakeTranscriber, _ *fakeGenerator) { tr.err = boom }, CodeTranscriptionFailed},
		{"generate", func(_ *fakeUploader, _ *fakeTranscriber, g *fakeGenerator) { g.err = boom }, CodeGenerationFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext := &fakeExtractor{t: t}
			up := &fakeUploader{}
			tr := &fakeTranscriber{text: "text"}
			gen := &fakeGenerator{set: validSet()}
			tc.mutate(up, tr, gen)
			o := newTestOrchestrator(t, ext, up, tr, gen)

			_, err := o.ProcessVideo(context.Background(), "https://youtu.be/abc123DEF45")
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("want *Error, got %T (%v)", err, err)
			}
			if perr.Code != tc.wantCode {
				t.Fatalf("code: want=%q got=%q", tc.wantCode, perr.Code)
			}
			assertDirsGone(t, ext.dirs)
		})
	}
}

func TestProcessVideoExtractionFailureLeavesNothing(t *testing.T) {
	ext := &fakeExtractor{t: t, err: NewError(CodeExtractionFailed, errors.New("yt-dlp failed"))}
	up := &fakeUploader{}
	o := newTestOrchestrator(t, ext, up, &fakeTranscriber{}, &fakeGenerator{})

	_, err := o.ProcessVideo(context.Background(), "https://youtu.be/abc123DEF45")
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != CodeExtractionFailed {
		t.Fatalf("want extraction_failed, got %v", err)
	}
	if up.calls != 0 {
		t.Fatalf("upload ran after failed extraction")
	}
}

func TestProcessVideoConcurrentJobsIndependent(t *testing.T) {
	ext := &fakeExtractor{t: t}
	up := &fakeUploader{}
	tr := &fakeTranscriber{text: "text"}
	gen := &fakeGenerator{set: validSet()}
	o := newTestOrchestrator(t, ext, up, tr, gen)

	urls := []string{
		"https://youtu.be/vidOne00001",
		"https://youtu.be/vidTwo00002",
		"https://youtu.be/vidThree003",
	}
	var wg sync.WaitGroup
	errs := make([]error, len(urls))
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			_, errs[i] = o.ProcessVideo(context.Background(), u)
		}(i, u)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("job %d failed: %v", i, err)
		}
	}
	assertDirsGone(t, ext.dirs)
}

func TestProcessText(t *testing.T) {
	gen := &fakeGenerator{set: validSet()}
	o := newTestOrchestrator(t, &fakeExtractor{t: t}, &fakeUploader{}, &fakeTranscriber{}, gen)

	res, err := o.ProcessText(context.Background(), "some source text")
	if err != nil {
		t.Fatalf("ProcessText: %v", err)
	}
	if len(res.Questions.Questions) != types.QuestionCount {
		t.Fatalf("questions: want=%d got=%d", types.QuestionCount, len(res.Questions.Questions))
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls: want=1 got=%d", gen.calls)
	}
}

func TestProcessTextEmpty(t *testing.T) {
	o := newTestOrchestrator(t, &fakeExtractor{t: t}, &fakeUploader{}, &fakeTranscriber{}, &fakeGenerator{})
	_, err := o.ProcessText(context.Background(), "   ")
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != CodeInvalidReference {
		t.Fatalf("want invalid_reference, got %v", err)
	}
}
