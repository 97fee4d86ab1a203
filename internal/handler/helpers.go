package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/apierror"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/domerr"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError translates the domain error taxonomy into HTTP statuses.
// Every business failure the services can return passes through here, so
// handlers never pick status codes by hand.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domerr.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, domerr.ErrValidacion):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, domerr.ErrStockInsuficiente),
		errors.Is(err, domerr.ErrSobrepago),
		errors.Is(err, domerr.ErrPedidoBloqueado),
		errors.Is(err, domerr.ErrTransicionInvalida),
		errors.Is(err, domerr.ErrDomicilioExistente),
		errors.Is(err, domerr.ErrYaAnulada),
		errors.Is(err, domerr.ErrYaCancelado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, domerr.ErrPersistencia):
		c.JSON(http.StatusInternalServerError, apierror.New("error interno"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("error interno"))
	}
}

// parseIDParam reads the :id path segment as a UUID, writing the 400 itself.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
