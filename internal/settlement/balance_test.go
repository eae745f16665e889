package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverhoef/splitty/internal/money"
	"github.com/mverhoef/splitty/internal/transaction"
	"github.com/mverhoef/splitty/internal/transaction/split"
)

var testDate = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func mustExpense(t *testing.T, owner string, amount money.Amount, participants []string) *transaction.Expense {
	t.Helper()
	e, err := transaction.NewExpense(owner, "test", testDate, amount, participants)
	require.NoError(t, err)
	return e
}

func mustPayment(t *testing.T, sender, recipient string, amount money.Amount) *transaction.Payment {
	t.Helper()
	p, err := transaction.NewPayment(sender, recipient, testDate, amount)
	require.NoError(t, err)
	return p
}

// The four-person scenario: Eva fronts 120.00 for everyone, Mark 68.00 for
// everyone, Anne 15.00 for Dave/Eva/Anne, and Dave hands Eva 20.00 in cash.
func exampleTransactions(t *testing.T) []transaction.Transaction {
	t.Helper()
	all := []string{"dave", "eva", "mark", "anne"}
	return []transaction.Transaction{
		mustExpense(t, "eva", 12000, all),
		mustExpense(t, "mark", 6800, all),
		mustExpense(t, "anne", 1500, []string{"dave", "eva", "anne"}),
		mustPayment(t, "dave", "eva", 2000),
	}
}

func TestBalances(t *testing.T) {
	keys := []string{"dave", "eva", "mark", "anne"}
	balances := Balances(keys, exampleTransactions(t))

	assert.Equal(t, map[string]money.Amount{
		"dave": 3200,
		"eva":  -4800,
		"mark": -2100,
		"anne": 3700,
	}, balances)
}

func TestBalancesEmptyEvent(t *testing.T) {
	balances := Balances([]string{"a", "b"}, nil)
	assert.Equal(t, map[string]money.Amount{"a": 0, "b": 0}, balances)
}

func TestBalancesPaymentOnly(t *testing.T) {
	balances := Balances([]string{"a", "b"}, []transaction.Transaction{
		mustPayment(t, "a", "b", 1250),
	})
	assert.Equal(t, money.Amount(-1250), balances["a"])
	assert.Equal(t, money.Amount(1250), balances["b"])
}

// Money is conserved: any transaction set built through the engine's own
// operations nets out to zero.
func TestBalancesConservation(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}

	weighted, err := transaction.NewWeightedExpense("b", "test", testDate, 10001,
		[]split.Share{{Key: "a", Units: 3}, {Key: "b", Units: 2}, {Key: "e", Units: 7}})
	require.NoError(t, err)

	edited := mustExpense(t, "c", 9999, keys)
	require.True(t, edited.RemoveParticipant("d"))
	require.NoError(t, edited.SetAmount(12345))

	txns := []transaction.Transaction{
		mustExpense(t, "a", 10000, []string{"a", "b", "c"}),
		weighted,
		edited,
		mustPayment(t, "d", "a", 333),
		mustPayment(t, "e", "c", 10001),
	}

	var sum money.Amount
	for _, v := range Balances(keys, txns) {
		sum += v
	}
	assert.Equal(t, money.Amount(0), sum)
}
