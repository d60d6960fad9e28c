// Package orders implementa el import de pedidos abiertos desde el WMS hacia la
// proyección relacional local que consume el motor de asignación.
package orders

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
)

// ImportUseCase trae pedidos del WMS y hace upsert de sus líneas. Re-importar
// sobreescribe la línea completa (la línea es inmutable salvo por re-import).
type ImportUseCase struct {
	lineRepo repository.OrderLineRepository
	wms      ports.WMSClient
	log      zerolog.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(lineRepo repository.OrderLineRepository, wms ports.WMSClient, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{lineRepo: lineRepo, wms: wms, log: log}
}

// ImportOpen importa pedidos abiertos según los filtros dados.
func (uc *ImportUseCase) ImportOpen(ctx context.Context, in dto.ImportOrdersRequest) (*dto.ImportOrdersResponse, error) {
	wmsOrders, err := uc.wms.FetchOpenOrders(ctx, ports.OrderSearch{
		Status:        in.Status,
		CustomerID:    in.CustomerID,
		ReferenceLike: in.ReferenceLike,
		ModifiedSince: in.ModifiedSince,
		PageSize:      in.PageSize,
		MaxPages:      in.MaxPages,
	})
	if err != nil {
		return nil, err
	}
	return uc.ingest(wmsOrders)
}

// ImportByIDs importa pedidos puntuales por id.
func (uc *ImportUseCase) ImportByIDs(ctx context.Context, orderIDs []int64) (*dto.ImportOrdersResponse, error) {
	if len(orderIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wmsOrders, err := uc.wms.FetchOrdersByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	return uc.ingest(wmsOrders)
}

// ListLines devuelve las líneas locales de un pedido.
func (uc *ImportUseCase) ListLines(ctx context.Context, orderID int64) ([]dto.OrderLineDTO, error) {
	if orderID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.lineRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderLineDTO, 0, len(lines))
	for _, ln := range lines {
		out = append(out, toLineDTO(ln))
	}
	return out, nil
}

func (uc *ImportUseCase) ingest(wmsOrders []ports.WMSOrder) (*dto.ImportOrdersResponse, error) {
	resp := &dto.ImportOrdersResponse{}
	now := time.Now()
	for _, ord := range wmsOrders {
		imported := dto.ImportedOrderDTO{
			OrderID:      ord.OrderID,
			CustomerID:   ord.CustomerID,
			CustomerName: ord.CustomerName,
			ReferenceNum: ord.ReferenceNum,
		}
		for _, wl := range ord.Lines {
			if wl.LineID == 0 {
				continue
			}
			line := &entity.OrderLine{
				ID:           wl.LineID,
				OrderID:      ord.OrderID,
				CustomerID:   ord.CustomerID,
				CustomerName: ord.CustomerName,
				SKU:          wl.SKU,
				ItemID:       wl.ItemID,
				Qualifier:    wl.Qualifier,
				OrderedQty:   wl.Qty,
				UnitID:       wl.UnitID,
				UnitName:     wl.UnitName,
				UnitPrice:    wl.UnitPrice,
				ReferenceNum: ord.ReferenceNum,
				ImportedAt:   now,
				UpdatedAt:    now,
			}
			if err := uc.lineRepo.Upsert(line); err != nil {
				return nil, err
			}
			resp.UpsertedLines++
			imported.Lines = append(imported.Lines, toLineDTO(line))
		}
		imported.LineCount = len(imported.Lines)
		resp.ImportedHeaders++
		resp.Orders = append(resp.Orders, imported)
	}
	uc.log.Info().
		Int("headers", resp.ImportedHeaders).
		Int("lines", resp.UpsertedLines).
		Msg("import de pedidos completado")
	return resp, nil
}

func toLineDTO(ln *entity.OrderLine) dto.OrderLineDTO {
	return dto.OrderLineDTO{
		LineID:       ln.ID,
		OrderID:      ln.OrderID,
		SKU:          ln.SKU,
		ItemID:       ln.ItemID,
		Qualifier:    ln.Qualifier,
		OrderedQty:   ln.OrderedQty,
		UnitName:     ln.UnitName,
		UnitPrice:    ln.UnitPrice,
		ReferenceNum: ln.ReferenceNum,
	}
}
