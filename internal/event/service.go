package event

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEventNotFound         = errors.New("event not found")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrParticipantExists     = errors.New("participant name is already taken in this event")
	ErrParticipantReferenced = errors.New("participant is referenced by transactions")
	ErrTagNotFound           = errors.New("tag not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
)

// Service handles event business logic
type Service struct {
	repo *Repository
}

// NewService creates a new event service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new event with a fresh invite code and optional initial
// participants.
func (s *Service) Create(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	event, err := s.repo.Create(ctx, newInviteCode(), req.Title)
	if err != nil {
		return nil, err
	}

	for _, p := range req.Participants {
		participant, err := s.repo.AddParticipant(ctx, event.ID, p)
		if err != nil {
			return nil, err
		}
		event.Participants = append(event.Participants, participant)
	}

	return event, nil
}

// GetByInviteCode retrieves an event with participants and tags
func (s *Service) GetByInviteCode(ctx context.Context, inviteCode string) (*Event, error) {
	event, err := s.repo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if event.Participants, err = s.repo.GetParticipants(ctx, event.ID); err != nil {
		return nil, err
	}
	if event.Tags, err = s.repo.GetTags(ctx, event.ID); err != nil {
		return nil, err
	}

	return event, nil
}

// GetByTransactionID retrieves the event owning a given transaction. Asking
// about an unknown transaction is a not-found error, not an empty result.
func (s *Service) GetByTransactionID(ctx context.Context, transactionID int64) (*Event, error) {
	event, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrTransactionNotFound
	}
	return event, nil
}

// ListByTag retrieves all events carrying a tag. An unknown tag is a
// not-found error, distinct from a tag that exists on zero events.
func (s *Service) ListByTag(ctx context.Context, tag string) ([]*Event, error) {
	exists, err := s.repo.TagExists(ctx, tag)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTagNotFound
	}

	return s.repo.ListByTag(ctx, tag)
}

// Rename changes an event's title
func (s *Service) Rename(ctx context.Context, inviteCode, title string) (*Event, error) {
	event, err := s.repo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	return s.repo.UpdateTitle(ctx, event.ID, title)
}

// Delete removes an event and everything it owns
func (s *Service) Delete(ctx context.Context, inviteCode string) error {
	event, err := s.repo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}

	return s.repo.Delete(ctx, event.ID)
}

// AddParticipant adds a participant to an event; names must be unique per
// event.
func (s *Service) AddParticipant(ctx context.Context, inviteCode string, req *AddParticipantRequest) (*Participant, error) {
	event, err := s.repo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	existing, err := s.repo.GetParticipant(ctx, event.ID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrParticipantExists
	}

	return s.repo.AddParticipant(ctx, event.ID, req)
}

// UpdateParticipant updates a participant's contact and routing info
func (s *Service) UpdateParticipant(ctx context.Context, inviteCode, name string, req *UpdateParticipantRequest) (*Participant, error) {
	event, err := s.repo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	p, err := s.repo.UpdateParticipant(ctx, event.ID, name, req)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrParticipantNotFound
	}
	return p, nil
}

// RemoveParticipant removes a participant, refusing while any transaction
// still references them.
func (s *Service) RemoveParticipant(ctx context.Context, inviteCode, name string) error {
	event, err := s.repo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}

	p, err := s.repo.GetParticipant(ctx, event.ID, name)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrParticipantNotFound
	}

	count, err := s.repo.CountTransactionsByParticipant(ctx, event.ID, name)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrParticipantReferenced
	}

	return s.repo.RemoveParticipant(ctx, event.ID, name)
}

// AddTag registers a tag as available in an event
func (s *Service) AddTag(ctx context.Context, inviteCode, tag string) error {
	event, err := s.repo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}

	return s.repo.AddTag(ctx, event.ID, tag)
}

// newInviteCode derives a short shareable code from a UUID.
func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
