// Package domerr declares the caller-facing error taxonomy of the core.
// Every recoverable business failure maps to one of these sentinels so that
// handlers can translate them to HTTP statuses in a single place, and tests
// can assert with errors.Is regardless of the wrapped detail message.
package domerr

import "errors"

var (
	// ErrNotFound — the referenced entity does not exist.
	ErrNotFound = errors.New("registro no encontrado")

	// ErrValidacion — non-positive quantity/amount or missing required field.
	ErrValidacion = errors.New("error de validacion")

	// ErrStockInsuficiente — the mutation would drive stock below zero.
	ErrStockInsuficiente = errors.New("stock insuficiente")

	// ErrSobrepago — the payment would exceed the order's outstanding total.
	ErrSobrepago = errors.New("el abono excede el saldo del pedido")

	// ErrPedidoBloqueado — the order is cancelled and rejects further edits.
	ErrPedidoBloqueado = errors.New("el pedido esta cancelado y no admite cambios")

	// ErrTransicionInvalida — the requested status change skips backward or
	// leaves a terminal state.
	ErrTransicionInvalida = errors.New("transicion de estado invalida")

	// ErrDomicilioExistente — a non-cancelled delivery already exists for the order.
	ErrDomicilioExistente = errors.New("el pedido ya tiene un domicilio activo")

	// ErrYaAnulada — the record was already voided; voiding twice is rejected.
	ErrYaAnulada = errors.New("el registro ya esta anulado")

	// ErrYaCancelado — cancelling an already-cancelled order is reported, not applied.
	ErrYaCancelado = errors.New("el pedido ya esta cancelado")

	// ErrPersistencia — a storage commit failed mid-transaction; the operation
	// was rolled back and no partial state survives.
	ErrPersistencia = errors.New("error de persistencia")
)
