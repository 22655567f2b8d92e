package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"transcriptify/internal/pipeline"
	"transcriptify/models"
	"transcriptify/utils"
)

// BatchDownloadRequest is the expected JSON body of
// POST /download_transcript_batch.
type BatchDownloadRequest struct {
	VideoIDs []string `json:"video_ids" validate:"required,min=1,dive,required"`
	Style    string   `json:"style" validate:"omitempty,oneof=default academic technical business"`
}

// ProgressRequest is the expected JSON body of POST /download_progress.
type ProgressRequest struct {
	VideoIDs []string `json:"video_ids" validate:"required,min=1"`
}

// DownloadTranscriptBatch runs the pipeline for the selected videos and
// responds with the merged plain-text document. Progress is visible to
// the polling endpoint while this request is in flight.
func (h *ApplicationHandler) DownloadTranscriptBatch(c *fiber.Ctx) error {
	if !c.Is("json") {
		return utils.RespondWithError(c, fiber.StatusUnsupportedMediaType, "Request must be JSON")
	}

	payload := new(BatchDownloadRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.WithError(err).Error("Error parsing batch download payload")
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if err := validate.Struct(payload); err != nil {
		h.Logger.Warnf("Validation failed for batch request: %v", utils.FormatValidationErrors(err))
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No video IDs provided")
	}

	req := models.BatchRequest{
		VideoIDs: payload.VideoIDs,
		Style:    models.ParseStyle(payload.Style),
	}
	h.Logger.Infof("Starting transcript download for %d videos with style %q", len(req.VideoIDs), req.Style)

	doc, err := h.Pipeline.Run(c.Context(), req)
	if err != nil {
		h.Logger.WithError(err).Error("Batch run failed")
		if errors.Is(err, pipeline.ErrAllVideosFailed) {
			return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to process any transcripts")
		}
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "An unexpected error occurred")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transcripts.txt"`)
	return c.SendString(doc)
}

// DownloadProgress reports per-video completion for the requested ids.
// Ids the tracker has never seen report 0 so a poll racing the batch
// start is indistinguishable from "not started yet".
func (h *ApplicationHandler) DownloadProgress(c *fiber.Ctx) error {
	if !c.Is("json") {
		return utils.RespondWithError(c, fiber.StatusUnsupportedMediaType, "Request must be JSON")
	}

	payload := new(ProgressRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No video IDs provided")
	}

	snapshot := h.Progress.Snapshot(payload.VideoIDs)
	progress := make(map[string]int, len(payload.VideoIDs))
	for _, id := range payload.VideoIDs {
		if p, ok := snapshot[id]; ok {
			progress[id] = p
		} else {
			progress[id] = 0
		}
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"progress": progress})
}
