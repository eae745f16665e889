package settlement

import (
	"container/heap"

	"github.com/mverhoef/splitty/internal/money"
)

// Entry is one participant's net balance, in the order balances should be
// considered. The position in the slice is the tie-break between equal
// balances, so callers pass entries in participant insertion order and the
// output stays deterministic.
type Entry struct {
	Key     string
	Balance money.Amount
}

// Transfer is a single recommended payment from a net debtor to a net
// creditor.
type Transfer struct {
	Amount money.Amount
	From   string
	To     string
}

// Result is the outcome of settling a balance set.
type Result struct {
	Transfers []Transfer

	// Residual is the signed amount left unmatched after one side ran out,
	// positive when debt remained, negative when credit did. More than one
	// cent of residual means the input balances did not sum to zero.
	Residual money.Amount
}

// Settled reports whether the transfers cover the balances to the cent.
func (r Result) Settled() bool {
	return r.Residual.Abs() <= 1
}

// Settle matches debtors against creditors greedily, largest outstanding
// amount first, and returns the transfers that bring every balance to zero.
//
// Debtors and creditors go into two priority queues keyed by remaining
// magnitude. Each round pops the largest of both, transfers the smaller of
// the two amounts, and re-queues whichever side still has a remainder. The
// loop ends when either queue empties; whatever the other queue still holds
// is surfaced as Result.Residual rather than dropped.
func Settle(entries []Entry) Result {
	debtors := &queue{}
	creditors := &queue{}
	for i, e := range entries {
		switch {
		case e.Balance > 0:
			heap.Push(debtors, &owing{key: e.Key, amount: e.Balance, seq: i})
		case e.Balance < 0:
			heap.Push(creditors, &owing{key: e.Key, amount: -e.Balance, seq: i})
		}
	}

	var transfers []Transfer
	for debtors.Len() > 0 && creditors.Len() > 0 {
		debtor := heap.Pop(debtors).(*owing)
		creditor := heap.Pop(creditors).(*owing)

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}
		transfers = append(transfers, Transfer{Amount: amount, From: debtor.key, To: creditor.key})

		debtor.amount -= amount
		creditor.amount -= amount
		if debtor.amount > 0 {
			heap.Push(debtors, debtor)
		}
		if creditor.amount > 0 {
			heap.Push(creditors, creditor)
		}
	}

	var residual money.Amount
	for _, d := range *debtors {
		residual += d.amount
	}
	for _, c := range *creditors {
		residual -= c.amount
	}

	return Result{Transfers: transfers, Residual: residual}
}

// owing is one side of an open position: a debtor's or creditor's remaining
// magnitude. seq is the original entry index, kept across re-queueing so
// ties stay in insertion order.
type owing struct {
	key    string
	amount money.Amount
	seq    int
}

type queue []*owing

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].amount != q[j].amount {
		return q[i].amount > q[j].amount
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*owing)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
