package api

import (
	"connectfitness/coach-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadHandler hands out presigned URLs for exercise demo videos.
type UploadHandler struct {
	videos service.ExerciseVideoService
	logger *zap.Logger
}

func NewUploadHandler(videos service.ExerciseVideoService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{videos: videos, logger: logger.Named("upload_handler")}
}

type RequestVideoUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// RequestUpload returns a presigned PUT URL and the object key to store as an exercise videoUrl.
// @Router /uploads/exercise-videos [post]
func (h *UploadHandler) RequestUpload(c *gin.Context) {
	coachID, ok := coachIDOrAbort(c)
	if !ok {
		return
	}
	var req RequestVideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	upload, err := h.videos.RequestUpload(c.Request.Context(), coachID, req.FileName, req.ContentType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// Delete removes an uploaded video given by ?key=.
// @Router /uploads/exercise-videos [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	coachID, ok := coachIDOrAbort(c)
	if !ok {
		return
	}
	if err := h.videos.Delete(c.Request.Context(), coachID, c.Query("key")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UploadHandler) respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, validationErrorBody(verr))
	case errors.Is(err, service.ErrStorageNotConfigured):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrVideoAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		h.logger.Error("video storage call failed", zap.Error(err))
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Video storage request failed")
	}
}
