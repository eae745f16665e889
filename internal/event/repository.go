package event

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles event and participant data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new event repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new event into the database
func (r *Repository) Create(ctx context.Context, inviteCode, title string) (*Event, error) {
	query := `
		INSERT INTO events (invite_code, title)
		VALUES ($1, $2)
		RETURNING id, invite_code, title, created_at
	`

	event := &Event{}
	err := r.db.QueryRowContext(ctx, query, inviteCode, title).Scan(
		&event.ID,
		&event.InviteCode,
		&event.Title,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetByInviteCode retrieves an event by its invite code
func (r *Repository) GetByInviteCode(ctx context.Context, inviteCode string) (*Event, error) {
	query := `
		SELECT id, invite_code, title, created_at
		FROM events
		WHERE invite_code = $1
	`

	event := &Event{}
	err := r.db.QueryRowContext(ctx, query, inviteCode).Scan(
		&event.ID,
		&event.InviteCode,
		&event.Title,
		&event.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// GetByTransactionID retrieves the event that owns a transaction
func (r *Repository) GetByTransactionID(ctx context.Context, transactionID int64) (*Event, error) {
	query := `
		SELECT e.id, e.invite_code, e.title, e.created_at
		FROM events e
		JOIN transactions t ON t.event_id = e.id
		WHERE t.id = $1
	`

	event := &Event{}
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&event.ID,
		&event.InviteCode,
		&event.Title,
		&event.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event by transaction: %w", err)
	}

	return event, nil
}

// ListByTag retrieves all events carrying the given tag
func (r *Repository) ListByTag(ctx context.Context, tag string) ([]*Event, error) {
	query := `
		SELECT e.id, e.invite_code, e.title, e.created_at
		FROM events e
		JOIN event_tags et ON et.event_id = e.id
		WHERE et.tag = $1
		ORDER BY e.id
	`

	rows, err := r.db.QueryContext(ctx, query, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by tag: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(&event.ID, &event.InviteCode, &event.Title, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// TagExists reports whether any event carries the given tag
func (r *Repository) TagExists(ctx context.Context, tag string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM event_tags WHERE tag = $1)`
	if err := r.db.QueryRowContext(ctx, query, tag).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check tag: %w", err)
	}
	return exists, nil
}

// UpdateTitle renames an event
func (r *Repository) UpdateTitle(ctx context.Context, id int64, title string) (*Event, error) {
	query := `
		UPDATE events
		SET title = $2
		WHERE id = $1
		RETURNING id, invite_code, title, created_at
	`

	event := &Event{}
	err := r.db.QueryRowContext(ctx, query, id, title).Scan(
		&event.ID,
		&event.InviteCode,
		&event.Title,
		&event.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

// Delete removes an event; transactions and participants cascade
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// AddParticipant inserts a participant into an event
func (r *Repository) AddParticipant(ctx context.Context, eventID int64, req *AddParticipantRequest) (*Participant, error) {
	query := `
		INSERT INTO participants (event_id, name, email, iban, bic)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, name, email, iban, bic
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, eventID, req.Name, req.Email, req.IBAN, req.BIC).Scan(
		&p.ID,
		&p.EventID,
		&p.Name,
		&p.Email,
		&p.IBAN,
		&p.BIC,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	return p, nil
}

// GetParticipant retrieves one participant of an event by name
func (r *Repository) GetParticipant(ctx context.Context, eventID int64, name string) (*Participant, error) {
	query := `
		SELECT id, event_id, name, email, iban, bic
		FROM participants
		WHERE event_id = $1 AND name = $2
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, eventID, name).Scan(
		&p.ID, &p.EventID, &p.Name, &p.Email, &p.IBAN, &p.BIC,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

// GetParticipants retrieves an event's participants in join order
func (r *Repository) GetParticipants(ctx context.Context, eventID int64) ([]*Participant, error) {
	query := `
		SELECT id, event_id, name, email, iban, bic
		FROM participants
		WHERE event_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		p := &Participant{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &p.IBAN, &p.BIC); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// UpdateParticipant updates a participant's contact and routing info
func (r *Repository) UpdateParticipant(ctx context.Context, eventID int64, name string, req *UpdateParticipantRequest) (*Participant, error) {
	query := `
		UPDATE participants
		SET email = COALESCE($3, email),
		    iban = COALESCE($4, iban),
		    bic = COALESCE($5, bic)
		WHERE event_id = $1 AND name = $2
		RETURNING id, event_id, name, email, iban, bic
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, eventID, name, req.Email, req.IBAN, req.BIC).Scan(
		&p.ID, &p.EventID, &p.Name, &p.Email, &p.IBAN, &p.BIC,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}

	return p, nil
}

// RemoveParticipant deletes a participant from an event
func (r *Repository) RemoveParticipant(ctx context.Context, eventID int64, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE event_id = $1 AND name = $2`, eventID, name); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	return nil
}

// CountTransactionsByParticipant counts transactions a participant is involved in
func (r *Repository) CountTransactionsByParticipant(ctx context.Context, eventID int64, name string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM transactions t
		WHERE t.event_id = $1 AND (
			t.owner_name = $2
			OR t.recipient_name = $2
			OR EXISTS (
				SELECT 1 FROM expense_debts d
				WHERE d.transaction_id = t.id AND d.participant_name = $2
			)
		)
	`
	if err := r.db.QueryRowContext(ctx, query, eventID, name).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count participant transactions: %w", err)
	}
	return count, nil
}

// AddTag registers a tag as available in an event
func (r *Repository) AddTag(ctx context.Context, eventID int64, tag string) error {
	query := `
		INSERT INTO event_tags (event_id, tag)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, eventID, tag); err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	return nil
}

// GetTags retrieves an event's available tags
func (r *Repository) GetTags(ctx context.Context, eventID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag FROM event_tags WHERE event_id = $1 ORDER BY tag`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}
