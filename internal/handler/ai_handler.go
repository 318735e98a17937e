package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

type Assistant interface {
	Chat(ctx context.Context, req domain.AIChatRequest) (*domain.AIResponse, error)
	WorkoutPlan(ctx context.Context, req domain.WorkoutPlanRequest) (*domain.AIResponse, error)
	Nutrition(ctx context.Context, req domain.NutritionRequest) (*domain.AIResponse, error)
	Motivation(ctx context.Context) (*domain.AIResponse, error)
}

type AIHandler struct {
	Base
	ai Assistant
}

func NewAIHandler(base Base, ai Assistant) *AIHandler {
	return &AIHandler{Base: base, ai: ai}
}

func (h *AIHandler) respond(w http.ResponseWriter, r *http.Request, res *domain.AIResponse, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req domain.AIChatRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.ai.Chat(r.Context(), req)
	h.respond(w, r, res, err)
}

func (h *AIHandler) WorkoutPlan(w http.ResponseWriter, r *http.Request) {
	var req domain.WorkoutPlanRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.ai.WorkoutPlan(r.Context(), req)
	h.respond(w, r, res, err)
}

func (h *AIHandler) Nutrition(w http.ResponseWriter, r *http.Request) {
	var req domain.NutritionRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.ai.Nutrition(r.Context(), req)
	h.respond(w, r, res, err)
}

func (h *AIHandler) Motivation(w http.ResponseWriter, r *http.Request) {
	res, err := h.ai.Motivation(r.Context())
	h.respond(w, r, res, err)
}
