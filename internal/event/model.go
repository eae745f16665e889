package event

import "time"

// Event represents a shared-expense event. Participants join with the
// invite code; all transactions and settlements are scoped to one event.
type Event struct {
	ID         int64     `json:"id"`
	InviteCode string    `json:"invite_code"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated separately
	Participants []*Participant `json:"participants,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
}

// Participant represents a member of an event. The name is the participant
// key: unique within the event and referenced by transactions and
// settlement instructions. IBAN/BIC and email are carried verbatim into
// settlement output, the engine never interprets them.
type Participant struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	IBAN    string `json:"iban,omitempty"`
	BIC     string `json:"bic,omitempty"`
}
