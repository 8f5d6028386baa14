// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// RestriccionError reports which numeros blocked a sale and why.
// Each entry carries the offending numero plus a machine-readable motivo
// (bloqueado | excede_monto | excede_cantidad) and a human message.
type RestriccionError struct {
	Detail  string            `json:"detail"`
	Numeros []NumeroRechazado `json:"numeros"`
}

type NumeroRechazado struct {
	Numero  int    `json:"numero"`
	Motivo  string `json:"motivo"`
	Mensaje string `json:"mensaje"`
}

func NewRestriccion(numeros []NumeroRechazado) *RestriccionError {
	return &RestriccionError{
		Detail:  "Uno o mas numeros estan restringidos",
		Numeros: numeros,
	}
}
