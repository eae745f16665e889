package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverhoef/splitty/internal/money"
	"github.com/mverhoef/splitty/internal/transaction/split"
)

var testDate = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func debtSum(e *Expense) money.Amount {
	var sum money.Amount
	for _, v := range e.Debts {
		sum += v
	}
	return sum
}

func TestNewExpense(t *testing.T) {
	e, err := NewExpense("eva", "dinner", testDate, 12000, []string{"dave", "eva", "mark", "anne"})
	require.NoError(t, err)

	assert.Equal(t, money.Amount(12000), e.Amount)
	assert.Equal(t, []string{"dave", "eva", "mark", "anne"}, e.Participants)
	assert.Equal(t, money.Amount(3000), e.Debts["dave"])
	assert.Equal(t, e.Amount, debtSum(e))
}

func TestNewExpenseInvalid(t *testing.T) {
	_, err := NewExpense("eva", "dinner", testDate, 12000, nil)
	assert.ErrorIs(t, err, split.ErrNoParticipants)

	_, err = NewExpense("eva", "dinner", testDate, -1, []string{"dave"})
	assert.ErrorIs(t, err, split.ErrNegativeAmount)
}

func TestNewWeightedExpense(t *testing.T) {
	e, err := NewWeightedExpense("mark", "drinks", testDate, 9000,
		[]split.Share{{Key: "mark", Units: 2}, {Key: "anne", Units: 1}})
	require.NoError(t, err)

	assert.Equal(t, money.Amount(6000), e.Debts["mark"])
	assert.Equal(t, money.Amount(3000), e.Debts["anne"])
	assert.Equal(t, e.Amount, debtSum(e))
}

// Changing the amount re-splits equally over the current participants, even
// after a weighted split. Documented behavior, not an accident.
func TestSetAmountRevertsToEqualSplit(t *testing.T) {
	e, err := NewWeightedExpense("mark", "drinks", testDate, 9000,
		[]split.Share{{Key: "mark", Units: 2}, {Key: "anne", Units: 1}})
	require.NoError(t, err)

	require.NoError(t, e.SetAmount(10000))

	assert.Equal(t, money.Amount(5000), e.Debts["mark"])
	assert.Equal(t, money.Amount(5000), e.Debts["anne"])
	assert.Equal(t, money.Amount(10000), debtSum(e))
}

func TestSplitEquallyIdempotent(t *testing.T) {
	e, err := NewExpense("anne", "taxi", testDate, 10000, []string{"a", "b", "c"})
	require.NoError(t, err)
	first := e.Debts

	require.NoError(t, e.SplitEqually(10000))
	assert.Equal(t, first, e.Debts)

	require.NoError(t, e.SplitEqually(10000))
	assert.Equal(t, first, e.Debts)
}

func TestSplitAmongKeepsStateOnError(t *testing.T) {
	e, err := NewExpense("anne", "taxi", testDate, 10000, []string{"a", "b"})
	require.NoError(t, err)
	before := e.Debts

	err = e.SplitAmong(10000, []split.Share{{Key: "a", Units: -1}})
	assert.ErrorIs(t, err, split.ErrInvalidWeight)
	assert.Equal(t, before, e.Debts)
	assert.Equal(t, []string{"a", "b"}, e.Participants)
}

func TestRemoveParticipant(t *testing.T) {
	e, err := NewExpense("anne", "groceries", testDate, 9000, []string{"a", "b", "c"})
	require.NoError(t, err)
	// 30.00 each; removing c spreads their 30.00 over a and b.
	require.True(t, e.RemoveParticipant("c"))

	assert.Equal(t, []string{"a", "b"}, e.Participants)
	assert.Equal(t, money.Amount(4500), e.Debts["a"])
	assert.Equal(t, money.Amount(4500), e.Debts["b"])
	assert.Equal(t, money.Amount(9000), e.Amount)
	assert.Equal(t, e.Amount, debtSum(e))
}

func TestRemoveParticipantUnknownKey(t *testing.T) {
	e, err := NewExpense("anne", "groceries", testDate, 9000, []string{"a", "b"})
	require.NoError(t, err)
	before := e.Debts

	assert.False(t, e.RemoveParticipant("nobody"))
	assert.Equal(t, before, e.Debts)
	assert.Equal(t, []string{"a", "b"}, e.Participants)
}

func TestRemoveLastParticipant(t *testing.T) {
	e, err := NewExpense("anne", "groceries", testDate, 9000, []string{"a"})
	require.NoError(t, err)

	assert.False(t, e.RemoveParticipant("a"))
	assert.Equal(t, money.Amount(9000), e.Debts["a"])
}

func TestDebtSumInvariantAcrossMutations(t *testing.T) {
	e, err := NewExpense("eva", "trip", testDate, 10001, []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, e.Amount, debtSum(e))

	require.NoError(t, e.SplitAmong(7777, []split.Share{
		{Key: "a", Units: 3}, {Key: "b", Units: 2}, {Key: "c", Units: 2},
	}))
	assert.Equal(t, e.Amount, debtSum(e))

	require.NoError(t, e.SetAmount(5000))
	assert.Equal(t, e.Amount, debtSum(e))

	require.True(t, e.RemoveParticipant("b"))
	assert.Equal(t, e.Amount, debtSum(e))
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment("dave", "eva", testDate, 2000)
	require.NoError(t, err)
	assert.Equal(t, "dave", p.Sender)
	assert.Equal(t, "eva", p.Recipient)
	assert.Equal(t, money.Amount(2000), p.Amount)

	_, err = NewPayment("dave", "dave", testDate, 2000)
	assert.ErrorIs(t, err, ErrSelfPayment)

	_, err = NewPayment("dave", "eva", testDate, -5)
	assert.ErrorIs(t, err, split.ErrNegativeAmount)
}
