// seed_inventory genera un script SQL para poblar la proyección de inventario
// a partir de un CSV exportado de la bodega (separador ';', codificación Latin-1,
// como lo exportan los WMS legados).
//
// Columnas esperadas: ReceiveItemID;SKU;ItemID;Qualifier;Location;ReceivedQty;AvailableQty
//
// Uso: go run ./cmd/seed_inventory [ruta/inventario.csv]
// Por defecto busca inventario.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_inventory.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type receiptRow struct {
	receiveItemID int64
	sku           string
	itemID        string
	qualifier     string
	location      string
	receivedQty   int
	availableQty  int
}

func main() {
	csvPath := "inventario.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exports legados vienen en ISO-8859-1; convertir a UTF-8 al leer
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []receiptRow
	var skipped int
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "ReceiveItemID") {
			continue // cabecera
		}
		if len(rec) < 7 {
			skipped++
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil || id <= 0 {
			skipped++
			continue
		}
		received, _ := strconv.Atoi(strings.TrimSpace(rec[5]))
		available, _ := strconv.Atoi(strings.TrimSpace(rec[6]))
		rows = append(rows, receiptRow{
			receiveItemID: id,
			sku:           strings.TrimSpace(rec[1]),
			itemID:        strings.TrimSpace(rec[2]),
			qualifier:     strings.TrimSpace(rec[3]),
			location:      strings.TrimSpace(rec[4]),
			receivedQty:   received,
			availableQty:  available,
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no contiene filas válidas")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_inventory.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Proyección inicial de inventario\n")
	out.WriteString("-- Generado desde el export CSV de bodega\n\n")
	out.WriteString("TRUNCATE inventory_receipts;\n\n")
	out.WriteString("INSERT INTO inventory_receipts (id, sku, item_id, qualifier, location_name, received_qty, available_qty, imported_at) VALUES\n")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ";"
		}
		fmt.Fprintf(out, "  (%d, '%s', '%s', '%s', '%s', %d, %d, now())%s\n",
			r.receiveItemID, escapeSQL(r.sku), escapeSQL(r.itemID), escapeSQL(r.qualifier),
			escapeSQL(r.location), r.receivedQty, r.availableQty, sep)
	}

	fmt.Printf("Generado %s: %d recepciones (%d filas omitidas)\n", outPath, len(rows), skipped)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
