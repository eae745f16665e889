package transaction

import (
	"context"
	"errors"

	"github.com/mverhoef/splitty/internal/event"
	"github.com/mverhoef/splitty/internal/money"
	"github.com/mverhoef/splitty/internal/transaction/split"
)

// Common errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotAnExpense        = errors.New("transaction is not an expense")
	ErrUnknownParticipant  = errors.New("participant is not a member of this event")
	ErrNotAParticipant     = errors.New("participant does not take part in this expense")
)

// Service handles transaction business logic
type Service struct {
	repo      *Repository
	eventRepo *event.Repository
}

// NewService creates a new transaction service with dependencies injected
func NewService(repo *Repository, eventRepo *event.Repository) *Service {
	return &Service{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

// CreateExpense creates an expense in an event. With weights given the
// amount is split by weight, otherwise equally over the participants.
func (s *Service) CreateExpense(ctx context.Context, inviteCode string, req *CreateExpenseRequest) (*Expense, error) {
	ev, err := s.getEvent(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	keys := req.participantKeys()
	if err := s.checkMembers(ctx, ev.ID, append([]string{req.Owner}, keys...)); err != nil {
		return nil, err
	}

	amount := money.FromFloat(req.Amount)

	var expense *Expense
	if len(req.Weights) > 0 {
		expense, err = NewWeightedExpense(req.Owner, req.Description, req.Date, amount, req.shares())
	} else {
		expense, err = NewExpense(req.Owner, req.Description, req.Date, amount, req.Participants)
	}
	if err != nil {
		return nil, err
	}

	expense.EventID = ev.ID
	expense.Tags = req.Tags
	return s.repo.CreateExpense(ctx, expense)
}

// CreatePayment records a direct transfer between two event members
func (s *Service) CreatePayment(ctx context.Context, inviteCode string, req *CreatePaymentRequest) (*Payment, error) {
	ev, err := s.getEvent(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	if err := s.checkMembers(ctx, ev.ID, []string{req.Sender, req.Recipient}); err != nil {
		return nil, err
	}

	payment, err := NewPayment(req.Sender, req.Recipient, req.Date, money.FromFloat(req.Amount))
	if err != nil {
		return nil, err
	}

	payment.EventID = ev.ID
	payment.Tags = req.Tags
	return s.repo.CreatePayment(ctx, payment)
}

// GetByID retrieves a transaction
func (s *Service) GetByID(ctx context.Context, id int64) (Transaction, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// ListByEvent retrieves an event's transactions in insertion order
func (s *Service) ListByEvent(ctx context.Context, inviteCode string) ([]Transaction, error) {
	ev, err := s.getEvent(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEventID(ctx, ev.ID)
}

// SetAmount changes an expense's amount. The debts are re-derived as an
// equal split over the expense's current participants; custom weights do
// not survive an amount edit.
func (s *Service) SetAmount(ctx context.Context, id int64, amount money.Amount) (*Expense, error) {
	expense, err := s.getExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := expense.SetAmount(amount); err != nil {
		return nil, err
	}
	return s.repo.UpdateExpense(ctx, expense)
}

// SplitEqually re-splits an expense equally over the given participants,
// or over its current participants when none are given.
func (s *Service) SplitEqually(ctx context.Context, id int64, participants []string) (*Expense, error) {
	expense, err := s.getExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(participants) > 0 {
		if err := s.checkMembers(ctx, expense.EventID, participants); err != nil {
			return nil, err
		}
	}

	if err := expense.SplitEqually(expense.Amount, participants...); err != nil {
		return nil, err
	}
	return s.repo.UpdateExpense(ctx, expense)
}

// SplitAmong re-splits an expense by explicit weights
func (s *Service) SplitAmong(ctx context.Context, id int64, shares []split.Share) (*Expense, error) {
	expense, err := s.getExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(shares))
	for i, sh := range shares {
		keys[i] = sh.Key
	}
	if err := s.checkMembers(ctx, expense.EventID, keys); err != nil {
		return nil, err
	}

	if err := expense.SplitAmong(expense.Amount, shares); err != nil {
		return nil, err
	}
	return s.repo.UpdateExpense(ctx, expense)
}

// RemoveParticipant takes one participant out of an expense, spreading
// their share over the rest
func (s *Service) RemoveParticipant(ctx context.Context, id int64, name string) (*Expense, error) {
	expense, err := s.getExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if !expense.RemoveParticipant(name) {
		return nil, ErrNotAParticipant
	}
	return s.repo.UpdateExpense(ctx, expense)
}

// Delete removes a transaction
func (s *Service) Delete(ctx context.Context, id int64) error {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if txn == nil {
		return ErrTransactionNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) getEvent(ctx context.Context, inviteCode string) (*event.Event, error) {
	ev, err := s.eventRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, event.ErrEventNotFound
	}
	return ev, nil
}

func (s *Service) getExpense(ctx context.Context, id int64) (*Expense, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	expense, ok := txn.(*Expense)
	if !ok {
		return nil, ErrNotAnExpense
	}
	return expense, nil
}

// checkMembers verifies that every key names a participant of the event
func (s *Service) checkMembers(ctx context.Context, eventID int64, keys []string) error {
	members, err := s.eventRepo.GetParticipants(ctx, eventID)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(members))
	for _, m := range members {
		known[m.Name] = struct{}{}
	}
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			return ErrUnknownParticipant
		}
	}
	return nil
}
