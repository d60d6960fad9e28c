// Package inventory implementa el import del snapshot de inventario del WMS.
package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
)

// ImportUseCase trae el snapshot de recepciones del WMS y reconstruye la
// proyección local completa. La cantidad disponible llega neta de reservas
// físicas externas a este sistema; el motor solo la lee.
type ImportUseCase struct {
	receiptRepo repository.InventoryReceiptRepository
	wms         ports.WMSClient
	log         zerolog.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(receiptRepo repository.InventoryReceiptRepository, wms ports.WMSClient, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{receiptRepo: receiptRepo, wms: wms, log: log}
}

// Import reemplaza la proyección local con el snapshot actual del WMS.
// Un snapshot vacío no es error: se reporta con nota y la proyección no se toca
// (evita vaciar el inventario local por una falla transitoria del feed).
func (uc *ImportUseCase) Import(ctx context.Context) (*dto.ImportInventoryResponse, error) {
	wmsReceipts, err := uc.wms.FetchInventory(ctx)
	if err != nil {
		return nil, err
	}
	if len(wmsReceipts) == 0 {
		uc.log.Warn().Msg("snapshot de inventario vacío; proyección local sin cambios")
		return &dto.ImportInventoryResponse{ImportedReceipts: 0, Note: "el WMS no devolvió recepciones"}, nil
	}

	now := time.Now()
	receipts := make([]*entity.InventoryReceipt, 0, len(wmsReceipts))
	for _, wr := range wmsReceipts {
		if wr.ReceiptID == 0 {
			continue
		}
		receipts = append(receipts, &entity.InventoryReceipt{
			ID:           wr.ReceiptID,
			SKU:          wr.SKU,
			ItemID:       wr.ItemID,
			Qualifier:    wr.Qualifier,
			LocationName: wr.LocationName,
			ReceivedQty:  wr.ReceivedQty,
			AvailableQty: wr.AvailableQty,
			ImportedAt:   now,
		})
	}
	if err := uc.receiptRepo.ReplaceAll(receipts); err != nil {
		return nil, err
	}
	uc.log.Info().Int("receipts", len(receipts)).Msg("import de inventario completado")
	return &dto.ImportInventoryResponse{ImportedReceipts: len(receipts)}, nil
}

// ListAvailable devuelve la proyección local con disponible positivo.
func (uc *ImportUseCase) ListAvailable(ctx context.Context) ([]dto.ReceiptDTO, error) {
	receipts, err := uc.receiptRepo.ListAvailable()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceiptDTO, 0, len(receipts))
	for _, rc := range receipts {
		out = append(out, dto.ReceiptDTO{
			ReceiptID:    rc.ID,
			SKU:          rc.SKU,
			ItemID:       rc.ItemID,
			Qualifier:    rc.Qualifier,
			LocationName: rc.LocationName,
			ReceivedQty:  rc.ReceivedQty,
			AvailableQty: rc.AvailableQty,
		})
	}
	return out, nil
}
