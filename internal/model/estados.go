package model

// Status vocabularies. The literal strings are part of the external contract
// (case-sensitive) and are stored as-is.

// Pedido
const (
	PedidoPendiente  = "Pendiente"
	PedidoEnProceso  = "En Proceso"
	PedidoCompletado = "Completado"
	PedidoCancelado  = "Cancelado"
)

// Venta
const (
	VentaCompletada = "Completada"
	VentaPendiente  = "Pendiente"
	VentaAnulada    = "Anulada"
)

// Tipo de venta
const (
	VentaDirecta   = "Directa"
	VentaPorPedido = "Por Pedido"
)

// Abono
const (
	AbonoRegistrado = "Registrado"
	AbonoAnulado    = "Anulado"
)

// Domicilio
const (
	DomicilioPendiente = "Pendiente"
	DomicilioEnCamino  = "En Camino"
	DomicilioEntregado = "Entregado"
	DomicilioCancelado = "Cancelado"
)

// Compra
const (
	CompraPendiente  = "Pendiente"
	CompraCompletada = "Completada"
	CompraAnulada    = "Anulada"
)
