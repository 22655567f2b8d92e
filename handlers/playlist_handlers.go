package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"transcriptify/internal/youtube"
	"transcriptify/models"
	"transcriptify/utils"
)

var validate = validator.New()

// GetPlaylistRequest is the expected JSON body of POST /get_playlist.
type GetPlaylistRequest struct {
	URL string `json:"url" validate:"required"`
}

// GetPlaylist validates the submitted URL and returns the playlist's
// videos in catalog order.
func (h *ApplicationHandler) GetPlaylist(c *fiber.Ctx) error {
	if !c.Is("json") {
		return utils.RespondWithError(c, fiber.StatusUnsupportedMediaType, "Request must be JSON")
	}

	payload := new(GetPlaylistRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.WithError(err).Error("Error parsing playlist request payload")
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if err := validate.Struct(payload); err != nil {
		h.Logger.Warnf("Validation failed for playlist request: %v", utils.FormatValidationErrors(err))
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No URL provided")
	}

	if !youtube.ValidateURL(payload.URL) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid YouTube URL")
	}

	playlistID := youtube.ExtractPlaylistID(payload.URL)
	if playlistID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid playlist URL")
	}

	h.Logger.Infof("Fetching playlist for URL: %s", payload.URL)

	ctx, cancel := context.WithTimeout(c.Context(), h.PlaylistTimeout)
	defer cancel()

	videos, err := h.Playlists.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return h.respondPlaylistError(c, err)
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"videos": videos})
}

func (h *ApplicationHandler) respondPlaylistError(c *fiber.Ctx, err error) error {
	h.Logger.WithError(err).Error("Playlist fetch failed")

	if errors.Is(err, context.DeadlineExceeded) {
		return utils.RespondWithError(c, fiber.StatusRequestTimeout, "Playlist fetch operation timed out")
	}

	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, vErr.Message)
	}

	var upErr *models.UpstreamError
	if errors.As(err, &upErr) && !upErr.Retriable() {
		// Quota denials and missing playlists are user-visible conditions.
		msg := "Playlist not found or not accessible"
		if upErr.StatusCode == 0 {
			msg = strings.TrimPrefix(upErr.Error(), upErr.Service+": ")
		}
		return utils.RespondWithError(c, fiber.StatusBadRequest, msg)
	}

	return utils.RespondWithError(c, fiber.StatusInternalServerError, "An unexpected error occurred")
}
