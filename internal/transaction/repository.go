package transaction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mverhoef/splitty/internal/money"
)

const (
	kindExpense = "expense"
	kindPayment = "payment"
)

// Repository handles transaction data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts an expense with its debt rows and tags
func (r *Repository) CreateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO transactions (event_id, kind, owner_name, description, amount_cents, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query,
		e.EventID, kindExpense, e.Owner, e.Description, int64(e.Amount), e.Date,
	).Scan(&e.ID); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	if err := insertDebts(ctx, tx, e); err != nil {
		return nil, err
	}
	if err := insertTags(ctx, tx, e.ID, e.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}
	return e, nil
}

// CreatePayment inserts a direct payment
func (r *Repository) CreatePayment(ctx context.Context, p *Payment) (*Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO transactions (event_id, kind, owner_name, recipient_name, amount_cents, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query,
		p.EventID, kindPayment, p.Sender, p.Recipient, int64(p.Amount), p.Date,
	).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err := insertTags(ctx, tx, p.ID, p.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return p, nil
}

// GetByID retrieves a transaction, reassembling the debt map for expenses
func (r *Repository) GetByID(ctx context.Context, id int64) (Transaction, error) {
	query := `
		SELECT id, event_id, kind, owner_name, recipient_name, description, amount_cents, date
		FROM transactions
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	txn, err := r.scanTransaction(ctx, row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return txn, err
}

// ListByEventID retrieves an event's transactions in insertion order
func (r *Repository) ListByEventID(ctx context.Context, eventID int64) ([]Transaction, error) {
	query := `
		SELECT id, event_id, kind, owner_name, recipient_name, description, amount_cents, date
		FROM transactions
		WHERE event_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		txn, err := r.scanTransaction(ctx, rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

// UpdateExpense rewrites an expense's amount, description and entire debt
// map. Splits are never patched in place; every mutation writes the full
// result of a fresh re-split.
func (r *Repository) UpdateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE transactions
		SET description = $2, amount_cents = $3, date = $4
		WHERE id = $1 AND kind = 'expense'
	`
	if _, err := tx.ExecContext(ctx, query, e.ID, e.Description, int64(e.Amount), e.Date); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_debts WHERE transaction_id = $1`, e.ID); err != nil {
		return nil, fmt.Errorf("failed to clear debts: %w", err)
	}
	if err := insertDebts(ctx, tx, e); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}
	return e, nil
}

// Delete removes a transaction; debt rows and tags cascade
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *Repository) scanTransaction(ctx context.Context, row scannable) (Transaction, error) {
	var (
		id, eventID int64
		kind, owner string
		recipient   sql.NullString
		description sql.NullString
		amountCents int64
		e           Expense
	)
	if err := row.Scan(&id, &eventID, &kind, &owner, &recipient, &description, &amountCents, &e.Date); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	tags, err := r.loadTags(ctx, id)
	if err != nil {
		return nil, err
	}

	if kind == kindPayment {
		return &Payment{
			ID:        id,
			EventID:   eventID,
			Sender:    owner,
			Recipient: recipient.String,
			Date:      e.Date,
			Amount:    money.Amount(amountCents),
			Tags:      tags,
		}, nil
	}

	e.ID = id
	e.EventID = eventID
	e.Owner = owner
	e.Description = description.String
	e.Amount = money.Amount(amountCents)
	e.Tags = tags
	if err := r.loadDebts(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) loadDebts(ctx context.Context, e *Expense) error {
	query := `
		SELECT participant_name, amount_cents
		FROM expense_debts
		WHERE transaction_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, e.ID)
	if err != nil {
		return fmt.Errorf("failed to load debts: %w", err)
	}
	defer rows.Close()

	e.Debts = make(map[string]money.Amount)
	for rows.Next() {
		var (
			name  string
			cents int64
		)
		if err := rows.Scan(&name, &cents); err != nil {
			return fmt.Errorf("failed to scan debt: %w", err)
		}
		e.Participants = append(e.Participants, name)
		e.Debts[name] = money.Amount(cents)
	}

	return rows.Err()
}

func (r *Repository) loadTags(ctx context.Context, transactionID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag FROM transaction_tags WHERE transaction_id = $1 ORDER BY tag`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func insertDebts(ctx context.Context, tx *sql.Tx, e *Expense) error {
	query := `
		INSERT INTO expense_debts (transaction_id, participant_name, amount_cents, position)
		VALUES ($1, $2, $3, $4)
	`
	for i, name := range e.Participants {
		if _, err := tx.ExecContext(ctx, query, e.ID, name, int64(e.Debts[name]), i); err != nil {
			return fmt.Errorf("failed to insert debt: %w", err)
		}
	}
	return nil
}

func insertTags(ctx context.Context, tx *sql.Tx, transactionID int64, tags []string) error {
	query := `
		INSERT INTO transaction_tags (transaction_id, tag)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, query, transactionID, tag); err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}
	return nil
}
