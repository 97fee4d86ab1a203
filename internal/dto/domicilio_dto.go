package dto

type CrearDomicilioRequest struct {
	PedidoID        string  `json:"pedido_id"        validate:"required,uuid"`
	Direccion       string  `json:"direccion"        validate:"required,min=5"`
	Repartidor      string  `json:"repartidor"       validate:"required,min=2"`
	FechaProgramada string  `json:"fecha_programada" validate:"required"` // RFC 3339
	Notas           *string `json:"notas"`
}

type ActualizarEstadoDomicilioRequest struct {
	Estado string `json:"estado" validate:"required,oneof='En Camino' Entregado Cancelado"`
}

type DomicilioFilter struct {
	Estado     string `form:"estado"`
	Repartidor string `form:"repartidor"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type DomicilioResponse struct {
	ID              string  `json:"id"`
	PedidoID        string  `json:"pedido_id"`
	Direccion       string  `json:"direccion"`
	Repartidor      string  `json:"repartidor"`
	FechaProgramada string  `json:"fecha_programada"`
	Estado          string  `json:"estado"`
	Notas           *string `json:"notas,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type DomicilioListResponse struct {
	Data  []DomicilioResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
