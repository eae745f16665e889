package transaction

import (
	"time"

	"github.com/mverhoef/splitty/internal/transaction/split"
)

// Weight is one participant's weight in a weighted split request
type Weight struct {
	Name  string `json:"name" validate:"required"`
	Units int    `json:"units" validate:"required,gt=0"`
}

// CreateExpenseRequest represents the request to create an expense.
// With Weights set the amount is split by weight; otherwise it is split
// equally over Participants.
type CreateExpenseRequest struct {
	Owner        string    `json:"owner" validate:"required"`
	Description  string    `json:"description" validate:"required,min=1,max=255"`
	Amount       float64   `json:"amount" validate:"required,gte=0"`
	Date         time.Time `json:"date" validate:"required"`
	Participants []string  `json:"participants,omitempty"`
	Weights      []Weight  `json:"weights,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
}

func (r *CreateExpenseRequest) participantKeys() []string {
	if len(r.Weights) == 0 {
		return r.Participants
	}
	keys := make([]string, len(r.Weights))
	for i, w := range r.Weights {
		keys[i] = w.Name
	}
	return keys
}

func (r *CreateExpenseRequest) shares() []split.Share {
	shares := make([]split.Share, len(r.Weights))
	for i, w := range r.Weights {
		shares[i] = split.Share{Key: w.Name, Units: w.Units}
	}
	return shares
}

// CreatePaymentRequest represents the request to record a direct payment
type CreatePaymentRequest struct {
	Sender    string    `json:"sender" validate:"required"`
	Recipient string    `json:"recipient" validate:"required"`
	Amount    float64   `json:"amount" validate:"required,gte=0"`
	Date      time.Time `json:"date" validate:"required"`
	Tags      []string  `json:"tags,omitempty"`
}

// SetAmountRequest represents the request to change an expense's amount
type SetAmountRequest struct {
	Amount float64 `json:"amount" validate:"required,gte=0"`
}

// SplitEquallyRequest represents the request to re-split an expense
// equally. Empty participants means the current participant set.
type SplitEquallyRequest struct {
	Participants []string `json:"participants,omitempty"`
}

// SplitAmongRequest represents the request to re-split an expense by weight
type SplitAmongRequest struct {
	Weights []Weight `json:"weights" validate:"required,min=1"`
}

// TransactionResponse represents either kind of transaction
type TransactionResponse struct {
	ID           int64              `json:"id"`
	EventID      int64              `json:"event_id"`
	Kind         string             `json:"kind"`
	Owner        string             `json:"owner"`
	Recipient    string             `json:"recipient,omitempty"`
	Description  string             `json:"description,omitempty"`
	Amount       float64            `json:"amount"`
	Date         string             `json:"date"`
	Tags         []string           `json:"tags,omitempty"`
	Participants []string           `json:"participants,omitempty"`
	Debts        map[string]float64 `json:"debts,omitempty"`
}

// ToResponse converts an Expense model to a TransactionResponse DTO
func (e *Expense) ToResponse() *TransactionResponse {
	debts := make(map[string]float64, len(e.Debts))
	for k, v := range e.Debts {
		debts[k] = v.Float64()
	}
	return &TransactionResponse{
		ID:           e.ID,
		EventID:      e.EventID,
		Kind:         kindExpense,
		Owner:        e.Owner,
		Description:  e.Description,
		Amount:       e.Amount.Float64(),
		Date:         e.Date.Format(time.RFC3339),
		Tags:         e.Tags,
		Participants: e.Participants,
		Debts:        debts,
	}
}

// ToResponse converts a Payment model to a TransactionResponse DTO
func (p *Payment) ToResponse() *TransactionResponse {
	return &TransactionResponse{
		ID:        p.ID,
		EventID:   p.EventID,
		Kind:      kindPayment,
		Owner:     p.Sender,
		Recipient: p.Recipient,
		Amount:    p.Amount.Float64(),
		Date:      p.Date.Format(time.RFC3339),
		Tags:      p.Tags,
	}
}

// ToTransactionResponse converts any transaction to its DTO
func ToTransactionResponse(txn Transaction) *TransactionResponse {
	switch txn := txn.(type) {
	case *Expense:
		return txn.ToResponse()
	case *Payment:
		return txn.ToResponse()
	}
	return nil
}
