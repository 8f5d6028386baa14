package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"colochas/internal/apierror"
	"colochas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
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

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pathID parses a numeric path parameter. Returns 0 and writes the error
// response when the parameter is not a positive integer.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(id), true
}

// respondError maps service-layer errors onto HTTP status codes and the
// apierror envelopes. Unknown errors become opaque 500s.
func respondError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var validation *service.ValidationError
	var invalidState *service.InvalidStateError
	var shiftClosed *service.ShiftClosedError
	var restriccion *service.RestriccionNumeroError
	var conflict *service.ConflictError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &validation):
		if len(validation.Fields) > 0 {
			c.JSON(http.StatusUnprocessableEntity, &apierror.ValidationError{
				Detail: validation.Msg,
				Fields: validation.Fields,
			})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.New(validation.Msg))
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, apierror.New(invalidState.Msg))
	case errors.As(err, &shiftClosed):
		c.JSON(http.StatusConflict, apierror.New(shiftClosed.Error()))
	case errors.As(err, &restriccion):
		numeros := make([]apierror.NumeroRechazado, 0, len(restriccion.Numeros))
		for _, n := range restriccion.Numeros {
			numeros = append(numeros, apierror.NumeroRechazado{
				Numero:  n.Numero,
				Motivo:  n.Motivo,
				Mensaje: n.Mensaje,
			})
		}
		c.JSON(http.StatusConflict, apierror.NewRestriccion(numeros))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.New(conflict.Msg))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
