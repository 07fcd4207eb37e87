package api

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type WorkoutPlanHandler struct {
	planService service.WorkoutPlanService
}

func NewWorkoutPlanHandler(planService service.WorkoutPlanService) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{planService: planService}
}

// CreateWorkoutPlanRequest accepts day as RFC 3339 or a plain YYYY-MM-DD date.
type CreateWorkoutPlanRequest struct {
	ClientID  FlexibleID    `json:"clientId"`
	Day       string        `json:"day"`
	PlanName  string        `json:"planName"`
	Exercises []interface{} `json:"exercises"`
}

const dateOnly = "2006-01-02"

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateOnly, s)
}

// @Router /workout-plans [post]
func (h *WorkoutPlanHandler) CreateWorkoutPlan(c *gin.Context) {
	coachID, ok := coachIDOrAbort(c)
	if !ok {
		return
	}
	var req CreateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var day time.Time
	if req.Day != "" {
		var err error
		if day, err = parseDay(req.Day); err != nil {
			abortWithError(c, http.StatusBadRequest, "day must be an RFC 3339 timestamp or YYYY-MM-DD")
			return
		}
	}

	plan, err := h.planService.CreateWorkoutPlan(c.Request.Context(), coachID, service.CreateWorkoutPlanInput{
		ClientID:  req.ClientID.String(),
		Day:       day,
		PlanName:  req.PlanName,
		Exercises: req.Exercises,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.AbortWithStatusJSON(http.StatusBadRequest, validationErrorBody(verr))
		case errors.Is(err, service.ErrClientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			_ = c.Error(err)
			abortWithError(c, http.StatusInternalServerError, "Failed to save workout plan")
		}
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// ListWorkoutPlans lists the coach's plans, newest day first, optionally for one ?clientId=.
// @Router /workout-plans [get]
func (h *WorkoutPlanHandler) ListWorkoutPlans(c *gin.Context) {
	coachID, ok := coachIDOrAbort(c)
	if !ok {
		return
	}
	plans, err := h.planService.ListWorkoutPlans(c.Request.Context(), coachID, c.Query("clientId"))
	if err != nil {
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout plans")
		return
	}
	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// @Router /workout-plans/{planId} [get]
func (h *WorkoutPlanHandler) GetWorkoutPlan(c *gin.Context) {
	coachID, ok := coachIDOrAbort(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetWorkoutPlan(c.Request.Context(), coachID, c.Param("planId"))
	if err != nil {
		if errors.Is(err, service.ErrWorkoutPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}
