package api

import (
	"bytes"
	"connectfitness/coach-api/internal/ai"
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FlexibleID accepts an id sent as a JSON string or a JSON number.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number")
	}
	*id = FlexibleID(n.String())
	return nil
}

func (id FlexibleID) String() string { return string(id) }

// FlexibleCount accepts a whole number sent as a JSON number or a numeric string.
type FlexibleCount int

func (n *FlexibleCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", s)
		}
		*n = FlexibleCount(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("count must be a number")
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("%v is not a whole number", f)
	}
	*n = FlexibleCount(int(f))
	return nil
}

type GenerateWorkoutsRequest struct {
	Goal        string        `json:"goal"`
	Equipment   string        `json:"equipment"`
	DaysPerWeek FlexibleCount `json:"daysPerWeek"`
	ClientID    FlexibleID    `json:"clientId"`
	CoachID     FlexibleID    `json:"coachId"`
}

type GenerateWorkoutsResponse struct {
	OK    bool                 `json:"ok"`
	Plans []domain.WorkoutPlan `json:"plans"`
}

type GenerationHandler struct {
	generation  service.GenerationService
	clients     service.ClientService
	logger      *zap.Logger
	requireAuth bool
}

// NewGenerationHandler serves POST /ai/workouts/generate. With requireAuth the
// route must sit behind AuthMiddleware, and the body's coachId must be the caller.
func NewGenerationHandler(generation service.GenerationService, clients service.ClientService, logger *zap.Logger, requireAuth bool) *GenerationHandler {
	return &GenerationHandler{
		generation:  generation,
		clients:     clients,
		logger:      logger.Named("generation_handler"),
		requireAuth: requireAuth,
	}
}

// GenerateWorkouts asks the model for a program and stores one workout plan per day.
// @Router /ai/workouts/generate [post]
func (h *GenerationHandler) GenerateWorkouts(c *gin.Context) {
	var body GenerateWorkoutsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req := service.GenerationRequest{
		Goal:        body.Goal,
		Equipment:   body.Equipment,
		DaysPerWeek: int(body.DaysPerWeek),
		ClientID:    body.ClientID.String(),
		CoachID:     body.CoachID.String(),
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	if h.requireAuth && !h.authorize(c, req) {
		return
	}

	plans, err := h.generation.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}
	c.JSON(http.StatusOK, GenerateWorkoutsResponse{OK: true, Plans: plans})
}

// authorize checks the caller is the coach named in the body and owns the client.
func (h *GenerationHandler) authorize(c *gin.Context, req service.GenerationRequest) bool {
	callerID, ok := coachIDOrAbort(c)
	if !ok {
		return false
	}
	if callerID != req.CoachID {
		h.logger.Warn("coachId does not match the authenticated coach",
			zap.String("caller_id", callerID),
			zap.String("coach_id", req.CoachID),
		)
		abortWithError(c, http.StatusForbidden, "coachId does not match the authenticated coach")
		return false
	}
	if _, err := h.clients.GetClient(c.Request.Context(), callerID, req.ClientID); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return false
		}
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to verify client")
		return false
	}
	return true
}

// respondError maps pipeline failures to their fixed public messages.
// Details stay in the server logs.
func (h *GenerationHandler) respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing fields", "fields": verr.Fields})
		return
	}

	_ = c.Error(err)
	switch {
	case errors.Is(err, ai.ErrMalformedResponse):
		abortWithError(c, http.StatusInternalServerError, "Bad JSON from model")
	case errors.Is(err, service.ErrStorageFailure):
		abortWithError(c, http.StatusInternalServerError, "Failed to save workout plans")
	default:
		abortWithError(c, http.StatusInternalServerError, "AI generation failed")
	}
}
