package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasorg/kasor/kasor-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionSelect = `
	SELECT
		t.id, t.budget_id, t.category_id, t.trx_type, t.amount, t.trx_date,
		t.note, t.payment_method, t.meta, t.created_by,
		t.delete_requested_by, t.delete_requested_at, t.delete_request_note,
		t.created_at, t.updated_at,
		b.name AS budget_name,
		c.name AS category_name,
		c.type AS category_type,
		u.name AS created_by_name
	FROM transactions t
	LEFT JOIN budgets b ON t.budget_id = b.id
	LEFT JOIN categories c ON t.category_id = c.id
	LEFT JOIN users u ON t.created_by = u.id`

// filterClause builds the shared predicate for list and count so the two
// stay total-consistent.
func filterClause(filters *domain.TransactionFilters) (string, []any) {
	clause := " WHERE 1=1"
	var args []any

	if filters == nil {
		return clause, args
	}
	if filters.BudgetID != nil {
		args = append(args, *filters.BudgetID)
		clause += fmt.Sprintf(" AND t.budget_id = $%d", len(args))
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		clause += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}
	if filters.Type != nil {
		args = append(args, *filters.Type)
		clause += fmt.Sprintf(" AND t.trx_type = $%d", len(args))
	}
	if filters.PaymentMethod != nil {
		args = append(args, *filters.PaymentMethod)
		clause += fmt.Sprintf(" AND t.payment_method = $%d", len(args))
	}
	if filters.DateFrom != nil {
		args = append(args, *filters.DateFrom)
		clause += fmt.Sprintf(" AND t.trx_date >= $%d", len(args))
	}
	if filters.DateTo != nil {
		args = append(args, *filters.DateTo)
		clause += fmt.Sprintf(" AND t.trx_date <= $%d", len(args))
	}
	return clause, args
}

// List returns transactions matching filters, newest first, paginated.
func (r *TransactionRepository) List(filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	ctx := context.Background()

	clause, args := filterClause(filters)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions t`+clause, args...).Scan(&total); err != nil {
		return nil, mapError(err)
	}

	var page, limit int32
	if filters != nil {
		page = filters.Page
		limit = filters.Limit
	}
	pagination := domain.NewPagination(page, limit, total)

	query := transactionSelect + clause + " ORDER BY t.trx_date DESC, t.created_at DESC"
	args = append(args, pagination.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, pagination.Offset())
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, mapError(err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return &domain.PaginatedTransactions{
		Transactions: transactions,
		Pagination:   pagination,
	}, nil
}

// GetByID retrieves a transaction with its joined display names.
func (r *TransactionRepository) GetByID(id int32) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, transactionSelect+` WHERE t.id = $1`, id)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, mapError(err)
	}
	return transaction, nil
}

// Create inserts a new transaction and returns the generated id.
func (r *TransactionRepository) Create(transaction *domain.Transaction) (int32, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}

	var id int32
	err = r.pool.QueryRow(ctx,
		`INSERT INTO transactions
		   (budget_id, category_id, trx_type, amount, trx_date, note, payment_method, meta, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		transaction.BudgetID, transaction.CategoryID, transaction.Type, amount,
		transaction.Date, ptrText(transaction.Note), paymentMethodText(transaction.PaymentMethod),
		metaBytes(transaction.Meta), transaction.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// Update replaces a transaction's mutable fields by id. The delete-request
// fields are not touched here.
func (r *TransactionRepository) Update(id int32, transaction *domain.Transaction) error {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions
		 SET budget_id = $1, category_id = $2, trx_type = $3, amount = $4, trx_date = $5,
		     note = $6, payment_method = $7, meta = $8, updated_at = NOW()
		 WHERE id = $9`,
		transaction.BudgetID, transaction.CategoryID, transaction.Type, amount,
		transaction.Date, ptrText(transaction.Note), paymentMethodText(transaction.PaymentMethod),
		metaBytes(transaction.Meta), id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction by id.
func (r *TransactionRepository) Delete(id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// RequestDelete records a pending delete request on a transaction.
func (r *TransactionRepository) RequestDelete(id int32, userID int32, note *string) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions
		 SET delete_requested_by = $1, delete_requested_at = NOW(),
		     delete_request_note = $2, updated_at = NOW()
		 WHERE id = $3`,
		userID, ptrText(note), id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Latest returns the most recent transactions with joined display names.
func (r *TransactionRepository) Latest(limit int32) ([]*domain.Transaction, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		transactionSelect+` ORDER BY t.trx_date DESC, t.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, mapError(err)
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction       domain.Transaction
		amount            pgtype.Numeric
		note              pgtype.Text
		paymentMethod     pgtype.Text
		meta              []byte
		deleteRequestedBy pgtype.Int4
		deleteRequestedAt pgtype.Timestamptz
		deleteRequestNote pgtype.Text
		budgetName        pgtype.Text
		categoryName      pgtype.Text
		categoryType      pgtype.Text
		createdByName     pgtype.Text
	)
	err := row.Scan(
		&transaction.ID, &transaction.BudgetID, &transaction.CategoryID, &transaction.Type,
		&amount, &transaction.Date, &note, &paymentMethod, &meta, &transaction.CreatedBy,
		&deleteRequestedBy, &deleteRequestedAt, &deleteRequestNote,
		&transaction.CreatedAt, &transaction.UpdatedAt,
		&budgetName, &categoryName, &categoryType, &createdByName,
	)
	if err != nil {
		return nil, err
	}

	transaction.Amount = pgNumericToDecimal(amount)
	transaction.Note = textPtr(note)
	if paymentMethod.Valid {
		method := domain.PaymentMethod(paymentMethod.String)
		transaction.PaymentMethod = &method
	}
	if len(meta) > 0 {
		transaction.Meta = meta
	}
	if deleteRequestedBy.Valid {
		transaction.DeleteRequestedBy = &deleteRequestedBy.Int32
	}
	if deleteRequestedAt.Valid {
		transaction.DeleteRequestedAt = &deleteRequestedAt.Time
	}
	transaction.DeleteRequestNote = textPtr(deleteRequestNote)
	transaction.BudgetName = textPtr(budgetName)
	transaction.CategoryName = textPtr(categoryName)
	if categoryType.Valid {
		ct := domain.CategoryType(categoryType.String)
		transaction.CategoryType = &ct
	}
	transaction.CreatedByName = textPtr(createdByName)
	return &transaction, nil
}

func paymentMethodText(m *domain.PaymentMethod) pgtype.Text {
	if m == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*m), Valid: true}
}

func metaBytes(meta []byte) []byte {
	if len(meta) == 0 {
		return nil
	}
	return meta
}
