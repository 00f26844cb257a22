package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/iamvtyagi/flashLearn/internal/logger"
)

// Extraction is the product of a successful audio download: a local mp3
// inside a directory owned exclusively by this job.
type Extraction struct {
	VideoID string
	Path    string
}

// Cleanup removes the job's working directory and everything in it.
// Safe to call more than once.
func (e *Extraction) Cleanup() {
	if e == nil || e.Path == "" {
		return
	}
	_ = os.RemoveAll(filepath.Dir(e.Path))
}

var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:.*[?&]v=|embed/)|youtu\.be/)([^"&?/]+)`)

// ParseVideoID pulls the video identifier out of a YouTube watch, share, or
// embed URL. Returns false when the reference carries no identifier.
func ParseVideoID(ref string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AudioExtractor downloads a video's audio track as mp3 via yt-dlp/ffmpeg.
type AudioExtractor struct {
	log *logger.Logger

	ytdlpPath  string
	ffmpegPath string
	workRoot   string
	timeout    time.Duration
}

func NewAudioExtractor(log *logger.Logger, workRoot string) *AudioExtractor {
	if workRoot == "" {
		workRoot = filepath.Join(os.TempDir(), "flashlearn-audio")
	}
	return &AudioExtractor{
		log:        log.With("service", "AudioExtractor"),
		ytdlpPath:  "yt-dlp",
		ffmpegPath: "ffmpeg",
		workRoot:   workRoot,
		timeout:    10 * time.Minute,
	}
}

// Extract downloads the audio of the referenced video into a request-unique
// directory and returns the resulting file. The identifier is validated and
// the external binaries are checked before anything touches the filesystem,
// so an invalid reference leaves no trace on disk.
func (x *AudioExtractor) Extract(ctx context.Context, videoURL string) (*Extraction, error) {
	videoID, ok := ParseVideoID(videoURL)
	if !ok {
		return nil, NewError(CodeInvalidReference, fmt.Errorf("no video id in %q", videoURL))
	}

	for _, bin := range []string{x.ytdlpPath, x.ffmpegPath} {
		if _, err := exec.LookPath(bin); err != nil {
			return nil, NewError(CodeMissingDependency, fmt.Errorf("required binary %q not in PATH: %w", bin, err))
		}
	}

	// Two concurrent jobs on the same video must not share a path, so the
	// directory carries a request-scoped component next to the video id.
	jobDir := filepath.Join(x.workRoot, fmt.Sprintf("%s-%s", videoID, uuid.NewString()))
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return nil, NewError(CodeExtractionFailed, fmt.Errorf("create job dir: %w", err))
	}
	outPath := filepath.Join(jobDir, videoID+".mp3")

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	x.log.Info("Downloading audio", "video_id", videoID, "out", outPath)
	cmd := exec.CommandContext(ctx, x.ytdlpPath,
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "0",
		"--no-warnings",
		"--no-check-certificates",
		"--prefer-free-formats",
		"--add-header", "referer:youtube.com",
		"-o", outPath,
		videoURL,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		_ = os.RemoveAll(jobDir)
		return nil, NewError(CodeExtractionFailed, fmt.Errorf("yt-dlp failed: %w; out=%s", err, string(out)))
	}

	info, statErr := os.Stat(outPath)
	if statErr != nil || info.Size() == 0 {
		_ = os.RemoveAll(jobDir)
		return nil, NewError(CodeExtractionFailed, fmt.Errorf("audio output missing or empty at %s", outPath))
	}

	x.log.Info("Audio download complete", "video_id", videoID, "size_bytes", info.Size())
	return &Extraction{VideoID: videoID, Path: outPath}, nil
}
