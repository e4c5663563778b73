package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fittrackr/fittrackr/internal/metrics"
	"github.com/fittrackr/fittrackr/internal/middleware"
	"github.com/fittrackr/fittrackr/internal/models"
	"github.com/fittrackr/fittrackr/internal/payment"
	"github.com/fittrackr/fittrackr/internal/plan"
	"github.com/fittrackr/fittrackr/internal/session"
	"github.com/fittrackr/fittrackr/internal/storage"
)

// Boundary limits for goal and plan inputs. Enforced here, at the UI edge,
// not in the domain operations.
const (
	minTargetWeight = 40.0
	maxTargetWeight = 200.0
	minPlanDuration = 1
	maxPlanDuration = 12
)

// FitnessService handles goal, subscription, and plan endpoints for
// authenticated users. Identity comes from the JWT middleware; unlike the
// single-session controller, this layer keeps no current-user state of its
// own.
type FitnessService struct {
	store   storage.Store
	gateway payment.Gateway
	logger  *slog.Logger
}

// NewFitnessService creates a new fitness service.
func NewFitnessService(store storage.Store, gateway payment.Gateway, logger *slog.Logger) *FitnessService {
	return &FitnessService{
		store:   store,
		gateway: gateway,
		logger:  logger,
	}
}

// RegisterRoutes mounts the authenticated endpoints on the router.
func (s *FitnessService) RegisterRoutes(r chi.Router) {
	r.Post("/goal", s.handleSetGoal)
	r.Post("/subscribe", s.handleSubscribe)
	r.Post("/plans", s.handleGeneratePlan)
	r.Get("/plans", s.handleListPlans)
}

type setGoalRequest struct {
	TargetWeight float64 `json:"target_weight"`
	GoalType     string  `json:"goal_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *FitnessService) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req setGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.TargetWeight < minTargetWeight || req.TargetWeight > maxTargetWeight {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("target_weight must be between %.0f and %.0f kg", minTargetWeight, maxTargetWeight))
		return
	}
	goalType := models.GoalType(req.GoalType)
	if !goalType.Valid() {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("goal_type must be %q or %q", models.GoalWeightLoss, models.GoalMuscleGain))
		return
	}

	goal := models.Goal{TargetWeight: req.TargetWeight, Type: goalType}
	if err := s.store.UpdateGoal(r.Context(), username, goal); err != nil {
		s.logger.Error("Failed to update goal", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("Goal updated", "username", username, "target_weight", req.TargetWeight, "goal_type", goalType)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Goals updated!"})
}

func (s *FitnessService) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	receipt, err := s.gateway.Charge(r.Context(), username, session.PremiumAmount, session.PremiumLabel)
	if err != nil {
		s.logger.Error("Subscription charge failed", "username", username, "error", err)
		metrics.RecordCharge("failure")
		writeError(w, http.StatusBadGateway, err)
		return
	}

	s.logger.Info("Subscription charged", "username", username, "receipt", receipt)
	metrics.RecordCharge("success")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Subscribed to Premium!"})
}

type generatePlanRequest struct {
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	Duration int    `json:"duration"`
}

type planResponse struct {
	Kind         string `json:"kind"`
	Label        string `json:"label"`
	Duration     int    `json:"duration"`
	DurationUnit string `json:"duration_unit"`
	Text         string `json:"text"`
}

func (s *FitnessService) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req generatePlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Duration < minPlanDuration || req.Duration > maxPlanDuration {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("duration must be between %d and %d", minPlanDuration, maxPlanDuration))
		return
	}

	kind := models.PlanKind(req.Kind)
	p, err := plan.New(kind, req.Label, req.Duration)
	if err != nil {
		if errors.Is(err, plan.ErrUnknownPlanKind) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// The JWT names a registered account, so the owner must exist; a miss
	// here is a wiring bug, not user error.
	if err := s.store.RecordPlan(r.Context(), plan.Record(username, p)); err != nil {
		s.logger.Error("Failed to record plan", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("Plan generated", "username", username, "kind", kind, "duration", req.Duration)
	metrics.RecordPlanGenerated(string(kind))
	writeJSON(w, http.StatusCreated, planResponse{
		Kind:         string(p.Kind()),
		Label:        p.Label(),
		Duration:     p.Duration(),
		DurationUnit: p.Kind().DurationUnit(),
		Text:         p.GenerateText(),
	})
}

type planRecordResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	Duration  int    `json:"duration"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

type listPlansResponse struct {
	Plans []planRecordResponse `json:"plans"`
}

func (s *FitnessService) handleListPlans(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	records, err := s.store.ListPlans(r.Context(), username)
	if err != nil {
		s.logger.Error("Failed to list plans", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := listPlansResponse{Plans: make([]planRecordResponse, len(records))}
	for i, record := range records {
		out.Plans[i] = planRecordResponse{
			ID:        record.ID,
			Kind:      string(record.Kind),
			Label:     record.Label,
			Duration:  record.Duration,
			Text:      record.RenderedText,
			CreatedAt: record.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, out)
}
