package infra

// pdf.go — PDF receipt generation using go-pdf/fpdf.
// Renders thermal receipt-style documents: business name header, receipt id
// and timestamp, item table, bold total. Output goes to
// storagePath/recibo_{tipo}_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
)

// GenerateReciboVentaPDF renders the receipt of a completed venta.
// Returns the absolute path to the generated file.
func GenerateReciboVentaPDF(venta *model.Venta, nombreNegocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_venta_%s.pdf", venta.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := newReciboPage(nombreNegocio, "Recibo de Venta")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venta %s", shortID(venta.ID.String())), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if venta.Cliente != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+venta.Cliente.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, FormatearPesos(item.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, FormatearPesos(venta.Total), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Pago: "+venta.MetodoPago, "", 1, "L", false, 0, "")

	finishRecibo(pdf, contentW)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateReciboAbonoPDF renders the receipt of an installment payment,
// including the pedido's balance after the abono.
func GenerateReciboAbonoPDF(abono *model.Abono, pedido *model.Pedido, pagado model.Saldo, nombreNegocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_abono_%s.pdf", abono.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := newReciboPage(nombreNegocio, "Recibo de Abono")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Abono %s", shortID(abono.ID.String())), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, abono.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Pedido %s", shortID(pedido.ID.String())), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	half := contentW * 0.5
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(half, 6, "Abonado:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, FormatearPesos(abono.Monto), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(half, 4, "Total pedido:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 4, FormatearPesos(pagado.Total), "", 1, "R", false, 0, "")
	pdf.CellFormat(half, 4, "Pagado:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 4, FormatearPesos(pagado.Pagado), "", 1, "R", false, 0, "")
	pdf.CellFormat(half, 4, "Saldo pendiente:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 4, FormatearPesos(pagado.Pendiente), "", 1, "R", false, 0, "")

	finishRecibo(pdf, contentW)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// newReciboPage sets up the 74×105mm thermal-style page with the shared header.
func newReciboPage(nombreNegocio, subtitulo string) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, nombreNegocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, subtitulo, "", 1, "C", false, 0, "")
	pdf.Ln(2)
	return pdf
}

func finishRecibo(pdf *fpdf.Fpdf, contentW float64) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}
