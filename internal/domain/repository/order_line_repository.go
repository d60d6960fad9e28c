package repository

import "github.com/jhoicas/fulfillment-api/internal/domain/entity"

// OrderLineRepository define el puerto de persistencia para líneas de pedido.
// El motor no las crea ni borra: las escribe el import del WMS y las lee la
// recomputación.
type OrderLineRepository interface {
	Upsert(line *entity.OrderLine) error
	GetByID(id int64) (*entity.OrderLine, error)
	ListByOrder(orderID int64) ([]*entity.OrderLine, error)
	ListByOrders(orderIDs []int64) ([]*entity.OrderLine, error)
	ListByIDs(ids []int64) ([]*entity.OrderLine, error)
	// ListByIDsForUpdate bloquea las filas (SELECT FOR UPDATE) para serializar
	// recomputaciones concurrentes sobre alcances que se solapan.
	ListByIDsForUpdate(ids []int64) ([]*entity.OrderLine, error)
}
