package repository

import (
	"context"
	"errors"
	"time"

	"receiptly/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrReceiptNotFound = errors.New("receipt not found")

var receiptColumns = []string{
	"bill_id", "user_id", "vendor", "date", "time", "payment",
	"subtotal", "tax", "amount", "category", "created_at", "updated_at",
}

type ReceiptRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReceiptRepository(db *pgxpool.Pool, logger *zap.Logger) *ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

// Save persists a receipt and its line items in one transaction.
// Saving an existing (user_id, bill_id) replaces the record: validation
// is advisory and never blocks persistence, so a re-upload of a flagged
// duplicate must still land.
func (r *ReceiptRepository) Save(ctx context.Context, rec *models.Receipt) error {
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := squirrel.Insert("receipts").
		Columns(receiptColumns...).
		Values(rec.BillID, rec.UserID, rec.Vendor, rec.Date, rec.Time, rec.Payment,
			rec.Subtotal, rec.Tax, rec.Amount, rec.Category, rec.CreatedAt, rec.UpdatedAt).
		Suffix(`ON CONFLICT (user_id, bill_id) DO UPDATE SET
			vendor = EXCLUDED.vendor, date = EXCLUDED.date, time = EXCLUDED.time,
			payment = EXCLUDED.payment, subtotal = EXCLUDED.subtotal, tax = EXCLUDED.tax,
			amount = EXCLUDED.amount, category = EXCLUDED.category, updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	del := squirrel.Delete("receipt_items").
		Where(squirrel.Eq{"user_id": rec.UserID, "bill_id": rec.BillID}).
		PlaceholderFormat(squirrel.Dollar)
	sql, args, err = del.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(rec.Items) > 0 {
		ins := squirrel.Insert("receipt_items").
			Columns("user_id", "bill_id", "position", "name", "price").
			PlaceholderFormat(squirrel.Dollar)
		for i, item := range rec.Items {
			ins = ins.Values(rec.UserID, rec.BillID, i, item.Name, item.Price)
		}
		sql, args, err = ins.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Exists reports whether a bill ID is already stored for the user. This
// backs the validator's duplicate check.
func (r *ReceiptRepository) Exists(ctx context.Context, userID uuid.UUID, billID string) (bool, error) {
	query := squirrel.Select("1").
		From("receipts").
		Where(squirrel.Eq{"user_id": userID, "bill_id": billID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns all of a user's receipts, newest date first, without
// line items. The analytics paths only need the money fields.
func (r *ReceiptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error) {
	query := squirrel.Select(receiptColumns...).
		From("receipts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []models.Receipt
	for rows.Next() {
		var rec models.Receipt
		if err := rows.Scan(
			&rec.BillID, &rec.UserID, &rec.Vendor, &rec.Date, &rec.Time, &rec.Payment,
			&rec.Subtotal, &rec.Tax, &rec.Amount, &rec.Category, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	return receipts, rows.Err()
}

// GetByBillID loads one receipt with its line items in text order.
func (r *ReceiptRepository) GetByBillID(ctx context.Context, userID uuid.UUID, billID string) (*models.Receipt, error) {
	query := squirrel.Select(receiptColumns...).
		From("receipts").
		Where(squirrel.Eq{"user_id": userID, "bill_id": billID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var rec models.Receipt
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rec.BillID, &rec.UserID, &rec.Vendor, &rec.Date, &rec.Time, &rec.Payment,
		&rec.Subtotal, &rec.Tax, &rec.Amount, &rec.Category, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return &rec, nil
}

func (r *ReceiptRepository) itemsFor(ctx context.Context, userID uuid.UUID, billID string) ([]models.LineItem, error) {
	query := squirrel.Select("name", "price").
		From("receipt_items").
		Where(squirrel.Eq{"user_id": userID, "bill_id": billID}).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var item models.LineItem
		if err := rows.Scan(&item.Name, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes a receipt and its items.
func (r *ReceiptRepository) Delete(ctx context.Context, userID uuid.UUID, billID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	del := squirrel.Delete("receipt_items").
		Where(squirrel.Eq{"user_id": userID, "bill_id": billID}).
		PlaceholderFormat(squirrel.Dollar)
	sql, args, err := del.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	del = squirrel.Delete("receipts").
		Where(squirrel.Eq{"user_id": userID, "bill_id": billID}).
		PlaceholderFormat(squirrel.Dollar)
	sql, args, err = del.ToSql()
	if err != nil {
		return err
	}
	res, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrReceiptNotFound
	}

	return tx.Commit(ctx)
}
