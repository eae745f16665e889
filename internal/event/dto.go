package event

// CreateEventRequest represents the request to create an event
type CreateEventRequest struct {
	Title        string                   `json:"title" validate:"required,min=1,max=255"`
	Participants []*AddParticipantRequest `json:"participants,omitempty"`
}

// RenameEventRequest represents the request to rename an event
type RenameEventRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
}

// AddParticipantRequest represents the request to add a participant
type AddParticipantRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email,omitempty"`
	IBAN  string `json:"iban,omitempty"`
	BIC   string `json:"bic,omitempty"`
}

// UpdateParticipantRequest represents the request to update a participant.
// Nil fields are left unchanged.
type UpdateParticipantRequest struct {
	Email *string `json:"email,omitempty"`
	IBAN  *string `json:"iban,omitempty"`
	BIC   *string `json:"bic,omitempty"`
}

// AddTagRequest represents the request to register a tag on an event
type AddTagRequest struct {
	Tag string `json:"tag" validate:"required,min=1,max=64"`
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID           int64          `json:"id"`
	InviteCode   string         `json:"invite_code"`
	Title        string         `json:"title"`
	CreatedAt    string         `json:"created_at"`
	Participants []*Participant `json:"participants,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
}

// ToResponse converts an Event model to an EventResponse DTO
func (e *Event) ToResponse() *EventResponse {
	return &EventResponse{
		ID:           e.ID,
		InviteCode:   e.InviteCode,
		Title:        e.Title,
		CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Participants: e.Participants,
		Tags:         e.Tags,
	}
}
