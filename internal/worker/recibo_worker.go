package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibo: renders the PDF for a venta or an
// abono and, when the cliente has an email on file, enqueues an email job with
// the PDF attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/infra"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/model"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/repository"
)

const (
	ReciboVenta = "venta"
	ReciboAbono = "abono"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	// Tipo: "venta" | "abono"
	Tipo         string  `json:"tipo"`
	ReferenciaID string  `json:"referencia_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

// ReciboWorker renders receipt PDFs and chains the optional email job.
type ReciboWorker struct {
	ventaRepo      repository.VentaRepository
	abonoRepo      repository.AbonoRepository
	pedidoRepo     repository.PedidoRepository
	dispatcher     *Dispatcher
	nombreNegocio  string
	pdfStoragePath string
}

func NewReciboWorker(
	ventaRepo repository.VentaRepository,
	abonoRepo repository.AbonoRepository,
	pedidoRepo repository.PedidoRepository,
	dispatcher *Dispatcher,
	nombreNegocio string,
	pdfStoragePath string,
) *ReciboWorker {
	return &ReciboWorker{
		ventaRepo:      ventaRepo,
		abonoRepo:      abonoRepo,
		pedidoRepo:     pedidoRepo,
		dispatcher:     dispatcher,
		nombreNegocio:  nombreNegocio,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single recibo job. A returned error requeues the job; the
// pool moves it to the DLQ after the retry budget is spent.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	refID, err := uuid.Parse(payload.ReferenciaID)
	if err != nil {
		log.Error().Str("referencia_id", payload.ReferenciaID).Msg("recibo_worker: invalid referencia_id")
		return nil
	}

	var pdfPath string
	var asunto string
	switch payload.Tipo {
	case ReciboVenta:
		pdfPath, asunto, err = w.reciboVenta(ctx, refID)
	case ReciboAbono:
		pdfPath, asunto, err = w.reciboAbono(ctx, refID)
	default:
		log.Warn().Str("tipo", payload.Tipo).Msg("recibo_worker: unknown tipo — skipping")
		return nil
	}
	if err != nil {
		log.Error().Err(err).Str("referencia_id", payload.ReferenciaID).Msg("recibo_worker: failed")
		return err
	}
	log.Info().Str("pdf", pdfPath).Str("tipo", payload.Tipo).Msg("recibo_worker: PDF generated")

	if payload.ClienteEmail == nil || *payload.ClienteEmail == "" {
		return nil
	}
	emailJob := EmailJobPayload{
		ToEmail: *payload.ClienteEmail,
		Subject: asunto,
		Body:    "Adjunto encontrarás tu recibo de " + w.nombreNegocio + ".",
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("recibo_worker: failed to enqueue email")
	}
	return nil
}

func (w *ReciboWorker) reciboVenta(ctx context.Context, id uuid.UUID) (string, string, error) {
	venta, err := w.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("venta %s: %w", id, err)
	}
	path, err := infra.GenerateReciboVentaPDF(venta, w.nombreNegocio, w.pdfStoragePath)
	if err != nil {
		return "", "", err
	}
	return path, fmt.Sprintf("Recibo de venta — %s", w.nombreNegocio), nil
}

func (w *ReciboWorker) reciboAbono(ctx context.Context, id uuid.UUID) (string, string, error) {
	abono, err := w.abonoRepo.FindByID(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("abono %s: %w", id, err)
	}
	pedido, err := w.pedidoRepo.FindByID(ctx, abono.PedidoID)
	if err != nil {
		return "", "", fmt.Errorf("pedido %s: %w", abono.PedidoID, err)
	}
	pagado, err := w.abonoRepo.SumRegistradosByPedido(ctx, pedido.ID)
	if err != nil {
		return "", "", err
	}
	saldo := model.Saldo{Total: pedido.Total, Pagado: pagado, Pendiente: pedido.Total.Sub(pagado)}
	if saldo.Pendiente.IsNegative() {
		saldo.Pendiente = decimal.Zero
	}
	path, err := infra.GenerateReciboAbonoPDF(abono, pedido, saldo, w.nombreNegocio, w.pdfStoragePath)
	if err != nil {
		return "", "", err
	}
	return path, fmt.Sprintf("Recibo de abono — %s", w.nombreNegocio), nil
}
