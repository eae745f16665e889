package settlement

import "github.com/mverhoef/splitty/internal/money"

// Balance is one participant's net position in an event
type Balance struct {
	Participant string       `json:"participant"`
	Amount      money.Amount `json:"amount"`
}

// Instruction is a single recommended transfer, enriched with the routing
// info a presentation layer needs: the receiver's bank details and the
// sender's email. The engine computes the triple; the contact fields are
// carried verbatim from the participant directory.
type Instruction struct {
	Amount       money.Amount `json:"amount"`
	From         string       `json:"from"`
	To           string       `json:"to"`
	SenderEmail  string       `json:"sender_email,omitempty"`
	ReceiverIBAN string       `json:"receiver_iban,omitempty"`
	ReceiverBIC  string       `json:"receiver_bic,omitempty"`
}

// Plan is a full settlement for an event: the balances it was derived
// from and the ordered transfer instructions that zero them.
type Plan struct {
	Balances     []Balance     `json:"balances"`
	Instructions []Instruction `json:"instructions"`

	// Residual is non-zero when the event's transactions did not conserve
	// money; the instructions still cover everything that could be matched.
	Residual money.Amount `json:"residual"`
}
