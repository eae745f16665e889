package settlement

import "fmt"

// BalanceResponse represents one participant's net balance
type BalanceResponse struct {
	Participant string  `json:"participant"`
	Amount      float64 `json:"amount"`
	Message     string  `json:"message"` // e.g. "dave owes 32.00" or "eva is owed 48.00"
}

// InstructionResponse represents one settlement transfer
type InstructionResponse struct {
	Amount       float64 `json:"amount"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	SenderEmail  string  `json:"sender_email,omitempty"`
	ReceiverIBAN string  `json:"receiver_iban,omitempty"`
	ReceiverBIC  string  `json:"receiver_bic,omitempty"`
	Message      string  `json:"message"`
}

// PlanResponse represents a full settlement plan
type PlanResponse struct {
	Balances     []*BalanceResponse     `json:"balances"`
	Instructions []*InstructionResponse `json:"instructions"`
	Residual     float64                `json:"residual,omitempty"`
}

// ToResponse converts a Balance to its DTO
func (b Balance) ToResponse() *BalanceResponse {
	var message string
	switch {
	case b.Amount > 0:
		message = fmt.Sprintf("%s owes %s", b.Participant, b.Amount.String())
	case b.Amount < 0:
		message = fmt.Sprintf("%s is owed %s", b.Participant, b.Amount.Abs().String())
	default:
		message = fmt.Sprintf("%s is settled up", b.Participant)
	}
	return &BalanceResponse{
		Participant: b.Participant,
		Amount:      b.Amount.Float64(),
		Message:     message,
	}
}

// ToResponse converts an Instruction to its DTO. The message is rendered
// for display; the structured fields remain the contract.
func (i Instruction) ToResponse() *InstructionResponse {
	message := fmt.Sprintf("%s should send %s to %s", i.From, i.Amount.String(), i.To)
	if i.ReceiverIBAN != "" {
		message += fmt.Sprintf(" (IBAN %s", i.ReceiverIBAN)
		if i.ReceiverBIC != "" {
			message += fmt.Sprintf(", BIC %s", i.ReceiverBIC)
		}
		message += ")"
	}
	return &InstructionResponse{
		Amount:       i.Amount.Float64(),
		From:         i.From,
		To:           i.To,
		SenderEmail:  i.SenderEmail,
		ReceiverIBAN: i.ReceiverIBAN,
		ReceiverBIC:  i.ReceiverBIC,
		Message:      message,
	}
}

// ToResponse converts a Plan to its DTO
func (p *Plan) ToResponse() *PlanResponse {
	balances := make([]*BalanceResponse, len(p.Balances))
	for i, b := range p.Balances {
		balances[i] = b.ToResponse()
	}
	instructions := make([]*InstructionResponse, len(p.Instructions))
	for i, instr := range p.Instructions {
		instructions[i] = instr.ToResponse()
	}
	return &PlanResponse{
		Balances:     balances,
		Instructions: instructions,
		Residual:     p.Residual.Float64(),
	}
}
