package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var _ repository.OrderLineRepository = (*OrderLineRepo)(nil)

// OrderLineRepo implementación de OrderLineRepository sobre PostgreSQL (usable con pool o tx).
type OrderLineRepo struct {
	q Querier
}

// NewOrderLineRepository construye el adaptador de líneas de pedido. Pasar pool o tx (Querier).
func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

const orderLineColumns = `
	id, order_id, customer_id, customer_name, sku, item_id, qualifier,
	ordered_qty, unit_id, unit_name, unit_price, reference_num, imported_at, updated_at`

// Upsert inserta o actualiza una línea por su ID del WMS. El import reemplaza
// los datos de la línea pero conserva imported_at de la primera carga.
func (r *OrderLineRepo) Upsert(line *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, customer_id, customer_name, sku, item_id, qualifier,
			ordered_qty, unit_id, unit_name, unit_price, reference_num, imported_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			order_id = EXCLUDED.order_id,
			customer_id = EXCLUDED.customer_id,
			customer_name = EXCLUDED.customer_name,
			sku = EXCLUDED.sku,
			item_id = EXCLUDED.item_id,
			qualifier = EXCLUDED.qualifier,
			ordered_qty = EXCLUDED.ordered_qty,
			unit_id = EXCLUDED.unit_id,
			unit_name = EXCLUDED.unit_name,
			unit_price = EXCLUDED.unit_price,
			reference_num = EXCLUDED.reference_num,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.CustomerID, line.CustomerName, line.SKU, line.ItemID,
		line.Qualifier, line.OrderedQty, line.UnitID, line.UnitName, line.UnitPrice, line.ReferenceNum,
	)
	if err != nil {
		return fmt.Errorf("upsert order line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID. Retorna (nil, nil) si no existe.
func (r *OrderLineRepo) GetByID(id int64) (*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	line, err := scanOrderLine(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	return line, nil
}

// ListByOrder lista las líneas de un pedido ordenadas por ID.
func (r *OrderLineRepo) ListByOrder(orderID int64) ([]*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE order_id = $1 ORDER BY id`
	return r.list(query, orderID)
}

// ListByOrders lista las líneas de varios pedidos ordenadas por ID.
func (r *OrderLineRepo) ListByOrders(orderIDs []int64) ([]*entity.OrderLine, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE order_id = ANY($1) ORDER BY id`
	return r.list(query, orderIDs)
}

// ListByIDs lista líneas concretas ordenadas por ID.
func (r *OrderLineRepo) ListByIDs(ids []int64) ([]*entity.OrderLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE id = ANY($1) ORDER BY id`
	return r.list(query, ids)
}

// ListByIDsForUpdate lista y bloquea las líneas (SELECT FOR UPDATE) para serializar
// recomputaciones concurrentes sobre alcances que se solapan.
func (r *OrderLineRepo) ListByIDsForUpdate(ids []int64) ([]*entity.OrderLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	return r.list(query, ids)
}

func (r *OrderLineRepo) list(query string, args ...any) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.OrderLine
	for rows.Next() {
		line, err := scanOrderLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}
	return lines, nil
}

func scanOrderLine(row pgx.Row) (*entity.OrderLine, error) {
	var l entity.OrderLine
	err := row.Scan(
		&l.ID, &l.OrderID, &l.CustomerID, &l.CustomerName, &l.SKU, &l.ItemID, &l.Qualifier,
		&l.OrderedQty, &l.UnitID, &l.UnitName, &l.UnitPrice, &l.ReferenceNum, &l.ImportedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
