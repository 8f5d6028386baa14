package service

import (
	"fmt"
	"strings"
)

// Motivo codes carried by RestriccionNumeroError.
const (
	MotivoBloqueado      = "bloqueado"
	MotivoExcedeMonto    = "excede_monto"
	MotivoExcedeCantidad = "excede_cantidad"
)

// NotFoundError: the referenced entity does not exist.
type NotFoundError struct {
	Entidad string
	Msg     string
}

func (e *NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s no encontrado", e.Entidad)
}

// ValidationError: malformed or out-of-range input, with optional
// field-level detail.
type ValidationError struct {
	Msg    string
	Fields map[string]string
}

func (e *ValidationError) Error() string { return e.Msg }

// InvalidStateError: the entity exists but its estado forbids the operation
// (e.g. selling against an inactive turno).
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string { return e.Msg }

// ShiftClosedError: the sale arrived past the turno's block threshold.
// Distinct from ValidationError so clients can show a specific
// "turno cerrado" message.
type ShiftClosedError struct {
	TurnoNombre string
	HoraLimite  string
}

func (e *ShiftClosedError) Error() string {
	return fmt.Sprintf("El turno %s esta cerrado para ventas (limite %s)", e.TurnoNombre, e.HoraLimite)
}

// NumeroRechazado describes why one numero blocked a sale.
type NumeroRechazado struct {
	Numero  int
	Motivo  string
	Mensaje string
}

// RestriccionNumeroError rejects a whole sale, naming every offending
// numero and the specific reason (blocked vs over-cap vs over-count).
type RestriccionNumeroError struct {
	Numeros []NumeroRechazado
}

func (e *RestriccionNumeroError) Error() string {
	nums := make([]string, 0, len(e.Numeros))
	for _, n := range e.Numeros {
		nums = append(nums, fmt.Sprintf("%d (%s)", n.Numero, n.Motivo))
	}
	return "Numeros restringidos: " + strings.Join(nums, ", ")
}

// ConflictError: a uniqueness constraint was hit (duplicate cierre,
// duplicate sorteo, ...). Duplicate restriction creation is NOT a
// conflict — it idempotently returns the existing row.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }
