package settlement

import (
	"github.com/mverhoef/splitty/internal/money"
	"github.com/mverhoef/splitty/internal/transaction"
)

// Balances walks an event's transactions and returns one signed net balance
// per participant: positive means the participant owes money overall,
// negative means they are owed.
//
// An expense counts the full amount against the owner (they advanced the
// money) and each debt-map share toward its participant, the owner's own
// share included. A direct payment reduces the sender's net debt and raises
// the recipient's. For a self-consistent transaction set the balances sum
// to zero.
func Balances(keys []string, txns []transaction.Transaction) map[string]money.Amount {
	balances := make(map[string]money.Amount, len(keys))
	for _, k := range keys {
		balances[k] = 0
	}

	for _, tx := range txns {
		switch tx := tx.(type) {
		case *transaction.Expense:
			balances[tx.Owner] -= tx.Amount
			for k, share := range tx.Debts {
				balances[k] += share
			}
		case *transaction.Payment:
			balances[tx.Sender] -= tx.Amount
			balances[tx.Recipient] += tx.Amount
		}
	}

	return balances
}
