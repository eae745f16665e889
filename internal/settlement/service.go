package settlement

import (
	"context"
	"log/slog"

	"github.com/mverhoef/splitty/internal/event"
	"github.com/mverhoef/splitty/internal/transaction"
)

// Service computes balances and settlement plans for events. It owns no
// state of its own: plans are derived fresh from the event's transaction
// list on every call and never stored.
type Service struct {
	eventRepo *event.Repository
	txRepo    *transaction.Repository
}

// NewService creates a new settlement service
func NewService(eventRepo *event.Repository, txRepo *transaction.Repository) *Service {
	return &Service{
		eventRepo: eventRepo,
		txRepo:    txRepo,
	}
}

// Balances computes the net balance of every participant in an event,
// in participant join order.
func (s *Service) Balances(ctx context.Context, inviteCode string) ([]Balance, error) {
	participants, txns, err := s.snapshot(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	return orderedBalances(participants, txns), nil
}

// Settle computes a settlement plan for an event: who should transfer how
// much to whom so that everyone ends up even.
func (s *Service) Settle(ctx context.Context, inviteCode string) (*Plan, error) {
	participants, txns, err := s.snapshot(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	balances := orderedBalances(participants, txns)

	entries := make([]Entry, len(balances))
	for i, b := range balances {
		entries[i] = Entry{Key: b.Participant, Balance: b.Amount}
	}
	result := Settle(entries)

	if !result.Settled() {
		slog.Warn("event balances do not sum to zero",
			"invite_code", inviteCode,
			"residual", result.Residual.String(),
		)
	}

	contact := make(map[string]*event.Participant, len(participants))
	for _, p := range participants {
		contact[p.Name] = p
	}

	instructions := make([]Instruction, len(result.Transfers))
	for i, t := range result.Transfers {
		instr := Instruction{Amount: t.Amount, From: t.From, To: t.To}
		if sender := contact[t.From]; sender != nil {
			instr.SenderEmail = sender.Email
		}
		if receiver := contact[t.To]; receiver != nil {
			instr.ReceiverIBAN = receiver.IBAN
			instr.ReceiverBIC = receiver.BIC
		}
		instructions[i] = instr
	}

	return &Plan{
		Balances:     balances,
		Instructions: instructions,
		Residual:     result.Residual,
	}, nil
}

// snapshot loads an event's participants and a copy of its transaction
// list. The engine works on the snapshot only, so concurrent writes to the
// event cannot tear a settlement computation.
func (s *Service) snapshot(ctx context.Context, inviteCode string) ([]*event.Participant, []transaction.Transaction, error) {
	ev, err := s.eventRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, nil, err
	}
	if ev == nil {
		return nil, nil, event.ErrEventNotFound
	}

	participants, err := s.eventRepo.GetParticipants(ctx, ev.ID)
	if err != nil {
		return nil, nil, err
	}

	txns, err := s.txRepo.ListByEventID(ctx, ev.ID)
	if err != nil {
		return nil, nil, err
	}

	return participants, txns, nil
}

func orderedBalances(participants []*event.Participant, txns []transaction.Transaction) []Balance {
	keys := make([]string, len(participants))
	for i, p := range participants {
		keys[i] = p.Name
	}

	byKey := Balances(keys, txns)

	balances := make([]Balance, len(keys))
	for i, k := range keys {
		balances[i] = Balance{Participant: k, Amount: byKey[k]}
	}
	return balances
}
