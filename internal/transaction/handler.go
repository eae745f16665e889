package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mverhoef/splitty/internal/event"
	"github.com/mverhoef/splitty/internal/money"
	"github.com/mverhoef/splitty/internal/transaction/split"
	"github.com/mverhoef/splitty/pkg/response"
)

// Handler handles HTTP requests for transaction operations
type Handler struct {
	service *Service
}

// NewHandler creates a new transaction handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for transaction endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/expenses", h.CreateExpense)
	r.Post("/payments", h.CreatePayment)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	// Event-based listing
	r.Get("/event/{code}", h.ListByEvent)

	// Expense mutation operations
	r.Put("/{id}/amount", h.SetAmount)
	r.Post("/{id}/split-equally", h.SplitEqually)
	r.Post("/{id}/split-among", h.SplitAmong)
	r.Delete("/{id}/participants/{name}", h.RemoveParticipant)

	return r
}

// CreateExpense handles POST /transactions/expenses?event={code}
// @Summary      Create an expense
// @Description  Create an expense split equally or by weights, with cent-exact shares
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        event query string true "Event invite code"
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/expenses [post]
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), r.URL.Query().Get("event"), &req)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, expense.ToResponse())
}

// CreatePayment handles POST /transactions/payments?event={code}
// @Summary      Record a payment
// @Description  Record a direct transfer from one participant to another
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        event query string true "Event invite code"
// @Param        request body CreatePaymentRequest true "Payment request"
// @Success      201 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/payments [post]
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), r.URL.Query().Get("event"), &req)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, payment.ToResponse())
}

// GetByID handles GET /transactions/{id}
// @Summary      Get transaction by ID
// @Tags         transactions
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Success      200 {object} response.APIResponse{data=TransactionResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	txn, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get transaction")
		return
	}

	response.JSON(w, http.StatusOK, ToTransactionResponse(txn))
}

// ListByEvent handles GET /transactions/event/{code}
// @Summary      List transactions by event
// @Description  Get an event's transactions in insertion order
// @Tags         transactions
// @Produce      json
// @Param        code path string true "Event invite code"
// @Success      200 {object} response.APIResponse{data=[]TransactionResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/event/{code} [get]
func (h *Handler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	txns, err := h.service.ListByEvent(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list transactions")
		return
	}

	responses := make([]*TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(txn)
	}

	response.JSON(w, http.StatusOK, responses)
}

// SetAmount handles PUT /transactions/{id}/amount
// @Summary      Change an expense's amount
// @Description  Re-splits the amount equally over the current participants; custom weights are discarded
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Param        request body SetAmountRequest true "New amount"
// @Success      200 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/{id}/amount [put]
func (h *Handler) SetAmount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	var req SetAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	expense, err := h.service.SetAmount(r.Context(), id, money.FromFloat(req.Amount))
	if err != nil {
		h.writeExpenseError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, expense.ToResponse())
}

// SplitEqually handles POST /transactions/{id}/split-equally
// @Summary      Re-split an expense equally
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Param        request body SplitEquallyRequest true "Participants (empty = current set)"
// @Success      200 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/{id}/split-equally [post]
func (h *Handler) SplitEqually(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	var req SplitEquallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	expense, err := h.service.SplitEqually(r.Context(), id, req.Participants)
	if err != nil {
		h.writeExpenseError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, expense.ToResponse())
}

// SplitAmong handles POST /transactions/{id}/split-among
// @Summary      Re-split an expense by weights
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Param        request body SplitAmongRequest true "Weights"
// @Success      200 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/{id}/split-among [post]
func (h *Handler) SplitAmong(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	var req SplitAmongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(req.Weights) == 0 {
		response.BadRequest(w, "Weights are required")
		return
	}

	shares := make([]split.Share, len(req.Weights))
	for i, wt := range req.Weights {
		shares[i] = split.Share{Key: wt.Name, Units: wt.Units}
	}

	expense, err := h.service.SplitAmong(r.Context(), id, shares)
	if err != nil {
		h.writeExpenseError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, expense.ToResponse())
}

// RemoveParticipant handles DELETE /transactions/{id}/participants/{name}
// @Summary      Remove a participant from an expense
// @Description  The removed share is spread equally over the remaining participants
// @Tags         transactions
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Param        name path string true "Participant name"
// @Success      200 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/{id}/participants/{name} [delete]
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	expense, err := h.service.RemoveParticipant(r.Context(), id, chi.URLParam(r, "name"))
	if err != nil {
		h.writeExpenseError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, expense.ToResponse())
}

// Delete handles DELETE /transactions/{id}
// @Summary      Delete a transaction
// @Tags         transactions
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /transactions/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete transaction")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

func (h *Handler) writeExpenseError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrTransactionNotFound) {
		response.NotFound(w, err.Error())
		return
	}
	// Everything else is a rejected mutation: unknown participant, wrong
	// transaction kind, or a split validation error.
	response.BadRequest(w, err.Error())
}
