package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/iamvtyagi/flashLearn/internal/logger"
)

const defaultMaxResults = 10

// Playlist is a search hit for a playlist query.
type Playlist struct {
	PlaylistID   string `json:"playlistId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnail    string `json:"thumbnail,omitempty"`
}

// Video is one entry of a playlist.
type Video struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Position  int64  `json:"position"`
}

// Client wraps the YouTube Data API v3 for playlist search and listing.
type Client interface {
	SearchPlaylists(ctx context.Context, query string, maxResults int64) ([]Playlist, error)
	PlaylistVideos(ctx context.Context, playlistID string, maxResults int64) ([]Video, error)
}

type client struct {
	log *logger.Logger
	svc *youtube.Service
}

func NewClient(ctx context.Context, log *logger.Logger, apiKey string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &client{
		log: log.With("service", "YoutubeClient"),
		svc: svc,
	}, nil
}

func (c *client) SearchPlaylists(ctx context.Context, query string, maxResults int64) ([]Playlist, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	call := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("playlist").
		MaxResults(maxResults).
		Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: %w", query, err)
	}

	out := make([]Playlist, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		out = append(out, Playlist{
			PlaylistID:   item.Id.PlaylistId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			Thumbnail:    thumbnailURL(item.Snippet.Thumbnails),
		})
	}
	return out, nil
}

func (c *client) PlaylistVideos(ctx context.Context, playlistID string, maxResults int64) ([]Video, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	call := c.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(maxResults).
		Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube playlist items %q: %w", playlistID, err)
	}

	out := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		out = append(out, Video{
			VideoID:   item.Snippet.ResourceId.VideoId,
			Title:     item.Snippet.Title,
			Thumbnail: thumbnailURL(item.Snippet.Thumbnails),
			Position:  item.Snippet.Position,
		})
	}
	return out, nil
}

func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	switch {
	case t.Medium != nil:
		return t.Medium.Url
	case t.Default != nil:
		return t.Default.Url
	case t.High != nil:
		return t.High.Url
	default:
		return ""
	}
}
