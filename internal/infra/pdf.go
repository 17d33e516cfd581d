package infra

// pdf.go — PDF ticket generation using go-pdf/fpdf.
// Generates A7-size thermal receipt-style tickets with:
//   - Business name header
//   - Sale code and timestamp
//   - Item table (product name, quantity, subtotal)
//   - Bold total, amount tendered, change
//
// The output file is saved to storagePath/ticket_{codigo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"puntoventa/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateTicketPDF generates a PDF receipt for a completed Venta.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateTicketPDF(venta *model.Venta, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%s.pdf", venta.Codigo)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Punto de Venta", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de Compra", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Ticket info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venta %s", venta.Codigo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		nombre := "Producto eliminado"
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		pdf.CellFormat(contentW*0.55, 4, truncate(nombre, 26), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.15, 4, fmt.Sprintf("x%d", item.Cantidad), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.30, 4, montoStr(item.Subtotal), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.6, 5, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 5, montoStr(venta.Total), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW*0.6, 4, "Recibido", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 4, montoStr(venta.Monto), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.6, 4, "Vuelto", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 4, montoStr(venta.Cambio), "", 1, "R", false, 0, "")

	if venta.Nota != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.MultiCell(contentW, 3, venta.Nota, "", "L", false)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 6)
	pdf.CellFormat(contentW, 3, "Gracias por su compra", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

func montoStr(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// truncate cuts s to max characters. It counts runes, not bytes: product
// names carry accented characters and a byte cut could split one in half.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
