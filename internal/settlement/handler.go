package settlement

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mverhoef/splitty/internal/event"
	"github.com/mverhoef/splitty/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/event/{code}/balances", h.Balances)
	r.Get("/event/{code}", h.Settle)

	return r
}

// Balances handles GET /settlements/event/{code}/balances
// @Summary      Get event balances
// @Description  Get every participant's net balance; positive means they owe money overall
// @Tags         settlements
// @Produce      json
// @Param        code path string true "Event invite code"
// @Success      200 {object} response.APIResponse{data=[]BalanceResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/event/{code}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.service.Balances(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	responses := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = b.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// Settle handles GET /settlements/event/{code}
// @Summary      Get a settlement plan
// @Description  Get the ordered transfers that settle the event with a greedy minimal-transfer matching
// @Tags         settlements
// @Produce      json
// @Param        code path string true "Event invite code"
// @Success      200 {object} response.APIResponse{data=PlanResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/event/{code} [get]
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.Settle(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute settlement")
		return
	}

	response.JSON(w, http.StatusOK, plan.ToResponse())
}
