package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var _ repository.InventoryReceiptRepository = (*InventoryReceiptRepo)(nil)

// InventoryReceiptRepo implementación de InventoryReceiptRepository sobre PostgreSQL.
type InventoryReceiptRepo struct {
	q Querier
}

// NewInventoryReceiptRepository construye el adaptador de recepciones. Pasar pool o tx (Querier).
func NewInventoryReceiptRepository(q Querier) *InventoryReceiptRepo {
	return &InventoryReceiptRepo{q: q}
}

const receiptColumns = `
	id, sku, item_id, qualifier, location_name, received_qty, available_qty, imported_at`

// ReplaceAll reconstruye la proyección completa del snapshot de inventario.
// Si falla a mitad la proyección queda incompleta; el import se reintenta y
// vuelve a reconstruirla desde cero, así que no se requiere atomicidad aquí.
func (r *InventoryReceiptRepo) ReplaceAll(receipts []*entity.InventoryReceipt) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `TRUNCATE inventory_receipts`); err != nil {
		return fmt.Errorf("truncate inventory receipts: %w", err)
	}
	query := `
		INSERT INTO inventory_receipts (id, sku, item_id, qualifier, location_name,
			received_qty, available_qty, imported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	for _, rec := range receipts {
		_, err := r.q.Exec(ctx, query,
			rec.ID, rec.SKU, rec.ItemID, rec.Qualifier, rec.LocationName,
			rec.ReceivedQty, rec.AvailableQty,
		)
		if err != nil {
			return fmt.Errorf("insert inventory receipt %d: %w", rec.ID, err)
		}
	}
	return nil
}

// GetByID obtiene una recepción por ID. Retorna (nil, nil) si no existe.
func (r *InventoryReceiptRepo) GetByID(id int64) (*entity.InventoryReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM inventory_receipts WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	rec, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory receipt: %w", err)
	}
	return rec, nil
}

// ListAvailable lista las recepciones con cantidad disponible positiva, ordenadas por ID.
func (r *InventoryReceiptRepo) ListAvailable() ([]*entity.InventoryReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM inventory_receipts WHERE available_qty > 0 ORDER BY id`
	return r.list(query)
}

// ListBySKUs lista las recepciones de los SKUs dados (comparación exacta sobre lo almacenado).
func (r *InventoryReceiptRepo) ListBySKUs(skus []string) ([]*entity.InventoryReceipt, error) {
	if len(skus) == 0 {
		return nil, nil
	}
	query := `SELECT ` + receiptColumns + ` FROM inventory_receipts WHERE sku = ANY($1) ORDER BY id`
	return r.list(query, skus)
}

func (r *InventoryReceiptRepo) list(query string, args ...any) ([]*entity.InventoryReceipt, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*entity.InventoryReceipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory receipt: %w", err)
		}
		receipts = append(receipts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory receipts: %w", err)
	}
	return receipts, nil
}

func scanReceipt(row pgx.Row) (*entity.InventoryReceipt, error) {
	var rec entity.InventoryReceipt
	err := row.Scan(
		&rec.ID, &rec.SKU, &rec.ItemID, &rec.Qualifier, &rec.LocationName,
		&rec.ReceivedQty, &rec.AvailableQty, &rec.ImportedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
