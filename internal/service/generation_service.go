package service

import (
	"connectfitness/coach-api/internal/ai"
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GenerationRequest asks for a daysPerWeek-day program for one client.
type GenerationRequest struct {
	Goal        string
	Equipment   string
	DaysPerWeek int
	ClientID    string
	CoachID     string
}

// Validate reports every missing field at once. DaysPerWeek below 1 counts as missing.
func (r GenerationRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Goal) == "" {
		missing = append(missing, "goal")
	}
	if strings.TrimSpace(r.Equipment) == "" {
		missing = append(missing, "equipment")
	}
	if r.DaysPerWeek < 1 {
		missing = append(missing, "daysPerWeek")
	}
	if strings.TrimSpace(r.ClientID) == "" {
		missing = append(missing, "clientId")
	}
	if strings.TrimSpace(r.CoachID) == "" {
		missing = append(missing, "coachId")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// GenerationService runs the generate-parse-persist pipeline for AI workouts.
type GenerationService interface {
	// Generate makes exactly one model call and returns the stored plans in day order.
	// Errors match ValidationError, ai.ErrModelUnavailable, ai.ErrMalformedResponse or ErrStorageFailure.
	Generate(ctx context.Context, req GenerationRequest) ([]domain.WorkoutPlan, error)
}

type GenerationOptions struct {
	// LogRawOutput puts the full model text in logs when it cannot be parsed.
	// A hash and length are always logged.
	LogRawOutput bool
	// Now defaults to time.Now.
	Now func() time.Time
}

type generationService struct {
	model        ai.ModelClient
	materializer *planMaterializer
	logger       *zap.Logger
	logRaw       bool
	now          func() time.Time
}

func NewGenerationService(model ai.ModelClient, plans repository.WorkoutPlanRepository, logger *zap.Logger, opts GenerationOptions) GenerationService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &generationService{
		model:        model,
		materializer: &planMaterializer{plans: plans},
		logger:       logger.Named("generation"),
		logRaw:       opts.LogRawOutput,
		now:          now,
	}
}

func (s *generationService) Generate(ctx context.Context, req GenerationRequest) ([]domain.WorkoutPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := s.logger.With(
		zap.String("coach_id", req.CoachID),
		zap.String("client_id", req.ClientID),
		zap.Int("days_per_week", req.DaysPerWeek),
	)

	prompt := ai.BuildWorkoutPrompt(req.Goal, req.Equipment, req.DaysPerWeek)

	started := time.Now()
	raw, err := s.model.Complete(ctx, prompt)
	if err != nil {
		log.Error("model call failed", zap.Duration("latency", time.Since(started)), zap.Error(err))
		if !errors.Is(err, ai.ErrModelUnavailable) {
			err = fmt.Errorf("%w: %v", ai.ErrModelUnavailable, err)
		}
		return nil, err
	}
	log.Debug("model call finished", zap.Duration("latency", time.Since(started)), zap.Int("raw_output_length", len(raw)))

	plan, err := parseModelOutput(raw)
	if err != nil {
		s.logMalformed(log, raw, err)
		return nil, err
	}
	if len(plan.Days) != req.DaysPerWeek {
		log.Warn("model returned a different number of days than requested", zap.Int("days_returned", len(plan.Days)))
	}

	// The model call already succeeded; finish the writes even if the caller goes away.
	records, err := s.materializer.Materialize(context.WithoutCancel(ctx), plan, req.CoachID, req.ClientID, s.now())
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var merr *MaterializeError
		if errors.As(err, &merr) {
			ids := make([]string, 0, len(merr.Saved))
			for _, p := range merr.Saved {
				ids = append(ids, p.ID)
			}
			fields = append(fields, zap.Int("days_total", merr.Total), zap.Strings("saved_plan_ids", ids))
		}
		log.Error("failed to save generated workout plans", fields...)
		return nil, err
	}

	log.Info("generated workout plans", zap.Int("plans", len(records)))
	return records, nil
}

// parseModelOutput runs extraction, lenient parsing and plan decoding.
// Every failure is a *ai.MalformedResponseError carrying the full raw text.
func parseModelOutput(raw string) (*ai.ParsedPlan, error) {
	candidate, err := ai.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	doc, err := ai.ParseLenient(candidate)
	if err == nil {
		var plan *ai.ParsedPlan
		if plan, err = ai.DecodePlan(doc); err == nil {
			return plan, nil
		}
	}
	var mre *ai.MalformedResponseError
	if errors.As(err, &mre) {
		mre.Raw = raw
	}
	return nil, err
}

// Model output can echo client details from the prompt, so the text itself is opt-in.
func (s *generationService) logMalformed(log *zap.Logger, raw string, err error) {
	sum := sha256.Sum256([]byte(raw))
	fields := []zap.Field{
		zap.Error(err),
		zap.String("raw_output_sha256", hex.EncodeToString(sum[:])),
		zap.Int("raw_output_length", len(raw)),
	}
	if s.logRaw {
		fields = append(fields, zap.String("raw_output", raw))
	}
	log.Error("model returned unusable output", fields...)
}
