package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/clients/youtube"
	"github.com/iamvtyagi/flashLearn/internal/http/response"
)

type SearchHandler struct {
	yt youtube.Client
}

func NewSearchHandler(yt youtube.Client) *SearchHandler {
	return &SearchHandler{yt: yt}
}

func (sh *SearchHandler) SearchPlaylists(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		response.FromAPIError(c, apierr.BadRequest("missing_query", fmt.Errorf("query parameter is required")))
		return
	}
	playlists, err := sh.yt.SearchPlaylists(c.Request.Context(), query, 0)
	if err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"playlists": playlists})
}

func (sh *SearchHandler) PlaylistVideos(c *gin.Context) {
	playlistID := strings.TrimSpace(c.Query("playlistId"))
	if playlistID == "" {
		response.FromAPIError(c, apierr.BadRequest("missing_playlist_id", fmt.Errorf("playlistId parameter is required")))
		return
	}
	videos, err := sh.yt.PlaylistVideos(c.Request.Context(), playlistID, 0)
	if err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"videos": videos})
}
