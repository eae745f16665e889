package transaction

import (
	"errors"
	"time"

	"github.com/mverhoef/splitty/internal/money"
	"github.com/mverhoef/splitty/internal/transaction/split"
)

// Common errors
var (
	ErrSelfPayment = errors.New("sender and recipient must differ")
)

// Transaction is either an *Expense or a *Payment. Consumers switch on the
// concrete type; the marker method keeps the set closed.
type Transaction interface {
	isTransaction()

	// TransactionID returns the stable identifier of the transaction
	// within its event.
	TransactionID() int64
}

// Expense is a cost advanced by one participant on behalf of several.
// Debts maps each participant to their share of the amount, owed to the
// owner. The participant order is kept alongside the map because remainder
// cents are assigned in that order.
//
// Invariant: the debt values sum to Amount exactly, after construction and
// after every mutation.
type Expense struct {
	ID          int64                   `json:"id"`
	EventID     int64                   `json:"event_id"`
	Owner       string                  `json:"owner"`
	Description string                  `json:"description"`
	Date        time.Time               `json:"date"`
	Amount      money.Amount            `json:"amount"`
	Tags        []string                `json:"tags,omitempty"`
	Debts       map[string]money.Amount `json:"debts"`

	// Participants holds the debt-map keys in split order. Remainder cents
	// land on the earliest participants, so the order is part of the state.
	Participants []string `json:"participants"`
}

// Payment is a direct transfer from Sender to Recipient, with no splitting.
type Payment struct {
	ID        int64        `json:"id"`
	EventID   int64        `json:"event_id"`
	Sender    string       `json:"sender"`
	Recipient string       `json:"recipient"`
	Date      time.Time    `json:"date"`
	Amount    money.Amount `json:"amount"`
	Tags      []string     `json:"tags,omitempty"`
}

func (e *Expense) isTransaction() {}
func (p *Payment) isTransaction() {}

func (e *Expense) TransactionID() int64 { return e.ID }
func (p *Payment) TransactionID() int64 { return p.ID }

// NewExpense creates an expense split equally among the given participants.
func NewExpense(owner, description string, date time.Time, amount money.Amount, participants []string) (*Expense, error) {
	e := &Expense{
		Owner:       owner,
		Description: description,
		Date:        date,
	}
	if err := e.SplitEqually(amount, participants...); err != nil {
		return nil, err
	}
	return e, nil
}

// NewWeightedExpense creates an expense split by the given weights.
func NewWeightedExpense(owner, description string, date time.Time, amount money.Amount, shares []split.Share) (*Expense, error) {
	e := &Expense{
		Owner:       owner,
		Description: description,
		Date:        date,
	}
	if err := e.SplitAmong(amount, shares); err != nil {
		return nil, err
	}
	return e, nil
}

// HasParticipant reports whether key takes part in this expense.
func (e *Expense) HasParticipant(key string) bool {
	_, ok := e.Debts[key]
	return ok
}

// SplitEqually re-splits the expense equally. With no keys given the current
// participant set is kept; otherwise it is replaced. Nothing is mutated on
// error.
func (e *Expense) SplitEqually(amount money.Amount, keys ...string) error {
	if len(keys) == 0 {
		keys = e.Participants
	}
	debts, err := split.Equal(amount, keys)
	if err != nil {
		return err
	}
	e.apply(amount, keys, debts)
	return nil
}

// SplitAmong re-splits the expense by explicit weights, replacing the
// participant set with the share keys. Nothing is mutated on error.
func (e *Expense) SplitAmong(amount money.Amount, shares []split.Share) error {
	debts, err := split.Split(amount, shares)
	if err != nil {
		return err
	}
	keys := make([]string, len(shares))
	for i, s := range shares {
		keys[i] = s.Key
	}
	e.apply(amount, keys, debts)
	return nil
}

// SetAmount changes the expense amount and re-derives the debts as an equal
// split over the current participants. Any earlier custom weighting is
// deliberately discarded: editing the amount always reverts to equal shares.
func (e *Expense) SetAmount(amount money.Amount) error {
	return e.SplitEqually(amount)
}

// RemoveParticipant drops key from the expense and spreads their share
// equally over the remaining participants, on top of their existing shares.
// It reports false, without mutating, for an unknown key or when key is the
// only participant left.
func (e *Expense) RemoveParticipant(key string) bool {
	vacated, ok := e.Debts[key]
	if !ok || len(e.Participants) < 2 {
		return false
	}

	remaining := make([]string, 0, len(e.Participants)-1)
	for _, k := range e.Participants {
		if k != key {
			remaining = append(remaining, k)
		}
	}

	extra, err := split.Equal(vacated, remaining)
	if err != nil {
		return false
	}

	debts := make(map[string]money.Amount, len(remaining))
	for _, k := range remaining {
		debts[k] = e.Debts[k] + extra[k]
	}
	e.apply(e.Amount, remaining, debts)
	return true
}

func (e *Expense) apply(amount money.Amount, keys []string, debts map[string]money.Amount) {
	e.Amount = amount
	e.Participants = make([]string, len(keys))
	copy(e.Participants, keys)
	e.Debts = debts
}

// NewPayment creates a direct transfer from sender to recipient.
func NewPayment(sender, recipient string, date time.Time, amount money.Amount) (*Payment, error) {
	if amount < 0 {
		return nil, split.ErrNegativeAmount
	}
	if sender == recipient {
		return nil, ErrSelfPayment
	}
	return &Payment{
		Sender:    sender,
		Recipient: recipient,
		Date:      date,
		Amount:    amount,
	}, nil
}
