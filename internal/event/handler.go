package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mverhoef/splitty/pkg/response"
)

// Handler handles HTTP requests for event operations
type Handler struct {
	service *Service
}

// NewHandler creates a new event handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for event endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{code}", h.GetByCode)
	r.Put("/{code}", h.Rename)
	r.Delete("/{code}", h.Delete)

	// Participant management
	r.Post("/{code}/participants", h.AddParticipant)
	r.Put("/{code}/participants/{name}", h.UpdateParticipant)
	r.Delete("/{code}/participants/{name}", h.RemoveParticipant)

	// Tags
	r.Post("/{code}/tags", h.AddTag)

	// Collaborator lookup helpers
	r.Get("/by-tag/{tag}", h.ListByTag)
	r.Get("/by-transaction/{transactionId}", h.GetByTransaction)

	return r
}

// Create handles POST /events
// @Summary      Create a new event
// @Description  Create an event with a fresh invite code and optional initial participants
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body CreateEventRequest true "Event creation request"
// @Success      201 {object} response.APIResponse{data=EventResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /events [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" {
		response.BadRequest(w, "Title is required")
		return
	}

	event, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create event")
		return
	}

	response.JSON(w, http.StatusCreated, event.ToResponse())
}

// GetByCode handles GET /events/{code}
// @Summary      Get event by invite code
// @Description  Get an event with its participants and tags
// @Tags         events
// @Produce      json
// @Param        code path string true "Invite code"
// @Success      200 {object} response.APIResponse{data=EventResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /events/{code} [get]
func (h *Handler) GetByCode(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetByInviteCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get event")
		return
	}

	response.JSON(w, http.StatusOK, event.ToResponse())
}

// Rename handles PUT /events/{code}
// @Summary      Rename an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        code path string true "Invite code"
// @Param        request body RenameEventRequest true "New title"
// @Success      200 {object} response.APIResponse{data=EventResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /events/{code} [put]
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	var req RenameEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" {
		response.BadRequest(w, "Title is required")
		return
	}

	event, err := h.service.Rename(r.Context(), chi.URLParam(r, "code"), req.Title)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to rename event")
		return
	}

	response.JSON(w, http.StatusOK, event.ToResponse())
}

// Delete handles DELETE /events/{code}
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        code path string true "Invite code"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /events/{code} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "code")); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete event")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// AddParticipant handles POST /events/{code}/participants
// @Summary      Add a participant
// @Description  Add a participant to an event; names are unique per event
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        code path string true "Invite code"
// @Param        request body AddParticipantRequest true "Participant"
// @Success      201 {object} response.APIResponse{data=Participant}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /events/{code}/participants [post]
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Name is required")
		return
	}

	p, err := h.service.AddParticipant(r.Context(), chi.URLParam(r, "code"), &req)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrParticipantExists) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add participant")
		return
	}

	response.JSON(w, http.StatusCreated, p)
}

// UpdateParticipant handles PUT /events/{code}/participants/{name}
// @Summary      Update a participant
// @Description  Update a participant's contact and payment routing info
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        code path string true "Invite code"
// @Param        name path string true "Participant name"
// @Param        request body UpdateParticipantRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=Participant}
// @Failure      404 {object} response.APIResponse
// @Router       /events/{code}/participants/{name} [put]
func (h *Handler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	var req UpdateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.UpdateParticipant(r.Context(), chi.URLParam(r, "code"), chi.URLParam(r, "name"), &req)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) || errors.Is(err, ErrParticipantNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update participant")
		return
	}

	response.JSON(w, http.StatusOK, p)
}

// RemoveParticipant handles DELETE /events/{code}/participants/{name}
// @Summary      Remove a participant
// @Description  Remove a participant not referenced by any transaction
// @Tags         participants
// @Produce      json
// @Param        code path string true "Invite code"
// @Param        name path string true "Participant name"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /events/{code}/participants/{name} [delete]
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveParticipant(r.Context(), chi.URLParam(r, "code"), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) || errors.Is(err, ErrParticipantNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrParticipantReferenced) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to remove participant")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Participant removed successfully"})
}

// AddTag handles POST /events/{code}/tags
// @Summary      Register a tag
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        code path string true "Invite code"
// @Param        request body AddTagRequest true "Tag"
// @Success      201 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /events/{code}/tags [post]
func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	var req AddTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Tag == "" {
		response.BadRequest(w, "Tag is required")
		return
	}

	if err := h.service.AddTag(r.Context(), chi.URLParam(r, "code"), req.Tag); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add tag")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"message": "Tag added successfully"})
}

// ListByTag handles GET /events/by-tag/{tag}
// @Summary      List events by tag
// @Description  Get all events carrying a tag; an unknown tag is a 404, not an empty list
// @Tags         events
// @Produce      json
// @Param        tag path string true "Tag"
// @Success      200 {object} response.APIResponse{data=[]EventResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /events/by-tag/{tag} [get]
func (h *Handler) ListByTag(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListByTag(r.Context(), chi.URLParam(r, "tag"))
	if err != nil {
		if errors.Is(err, ErrTagNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list events")
		return
	}

	responses := make([]*EventResponse, len(events))
	for i, e := range events {
		responses[i] = e.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// GetByTransaction handles GET /events/by-transaction/{transactionId}
// @Summary      Get the event owning a transaction
// @Tags         events
// @Produce      json
// @Param        transactionId path int true "Transaction ID"
// @Success      200 {object} response.APIResponse{data=EventResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /events/by-transaction/{transactionId} [get]
func (h *Handler) GetByTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := strconv.ParseInt(chi.URLParam(r, "transactionId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	event, err := h.service.GetByTransactionID(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get event")
		return
	}

	response.JSON(w, http.StatusOK, event.ToResponse())
}
