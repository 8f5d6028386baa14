package service

import (
	"context"
	"testing"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTurnoFixture(t *testing.T) (*turnoService, *stubTurnoRepo) {
	t.Helper()
	repo := newStubTurnoRepo()
	return &turnoService{repo: repo, now: time.Now}, repo
}

func strp(s string) *string { return &s }

func TestCrearTurnoConDefaults(t *testing.T) {
	svc, _ := newTurnoFixture(t)

	resp, err := svc.Crear(context.Background(), 1, dto.CrearTurnoRequest{
		Nombre: "Especial", Categoria: "diaria", Hora: "10:00", HoraCierre: "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.TiempoAlerta)
	assert.Equal(t, 5, resp.TiempoBloqueo)
	assert.Equal(t, "activo", resp.Estado)

	_, err = svc.Crear(context.Background(), 1, dto.CrearTurnoRequest{
		Nombre: "Especial", Categoria: "diaria", Hora: "10:00", HoraCierre: "12:00",
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestActualizarTurnoEstandarNoSeRenombra(t *testing.T) {
	svc, repo := newTurnoFixture(t)
	estandar := turnoActivo(repo, "6 PM", "18:00")
	custom := turnoActivo(repo, "Especial", "12:00")

	_, err := svc.Actualizar(context.Background(), estandar.ID, dto.ActualizarTurnoRequest{
		Nombre: strp("6 PM renombrado"),
	})
	var inv *InvalidStateError
	require.ErrorAs(t, err, &inv)

	// Other fields of a standard turno remain editable.
	resp, err := svc.Actualizar(context.Background(), estandar.ID, dto.ActualizarTurnoRequest{
		HoraCierre: strp("18:30"), TiempoBloqueo: intp(8),
	})
	require.NoError(t, err)
	assert.Equal(t, "18:30", resp.HoraCierre)
	assert.Equal(t, 8, resp.TiempoBloqueo)

	resp, err = svc.Actualizar(context.Background(), custom.ID, dto.ActualizarTurnoRequest{
		Nombre: strp("Especial 2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Especial 2", resp.Nombre)
}

func TestEliminarTurnoEstandarDesactiva(t *testing.T) {
	svc, repo := newTurnoFixture(t)
	estandar := turnoActivo(repo, "9 PM", "21:00")

	require.NoError(t, svc.Eliminar(context.Background(), estandar.ID))

	guardado, err := repo.FindByID(context.Background(), estandar.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactivo", guardado.Estado)
}

func TestEliminarTurnoConHistorialDesactiva(t *testing.T) {
	svc, repo := newTurnoFixture(t)
	custom := turnoActivo(repo, "Especial", "12:00")
	repo.ventasPorTurno[custom.ID] = 3

	require.NoError(t, svc.Eliminar(context.Background(), custom.ID))

	guardado, err := repo.FindByID(context.Background(), custom.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactivo", guardado.Estado)
}

func TestEliminarTurnoSinHistorialBorra(t *testing.T) {
	svc, repo := newTurnoFixture(t)
	custom := turnoActivo(repo, "Especial", "12:00")

	require.NoError(t, svc.Eliminar(context.Background(), custom.ID))

	_, err := repo.FindByID(context.Background(), custom.ID)
	require.Error(t, err)
}

func TestListarTurnosExcluyeInactivos(t *testing.T) {
	svc, repo := newTurnoFixture(t)
	turnoActivo(repo, "6 PM", "18:00")
	inactivo := turnoActivo(repo, "Especial", "12:00")
	inactivo.Estado = "inactivo"
	require.NoError(t, repo.Update(context.Background(), inactivo))

	activos, err := svc.Listar(context.Background(), "", false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)

	todos, err := svc.Listar(context.Background(), "", true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestVerificarAlertaCierreVentanas(t *testing.T) {
	svc, repo := newTurnoFixture(t)
	turno := turnoActivo(repo, "6 PM", "18:00") // alerta 10, bloqueo 5

	casos := []struct {
		nombre    string
		now       time.Time
		enAlerta  bool
		bloqueado bool
		restantes int
	}{
		{"lejos del cierre", time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), false, false, 60},
		{"en ventana de alerta", time.Date(2025, 3, 10, 17, 52, 0, 0, time.UTC), true, false, 8},
		{"en ventana de bloqueo", time.Date(2025, 3, 10, 17, 57, 0, 0, time.UTC), true, true, 3},
		{"despues del cierre", time.Date(2025, 3, 10, 18, 5, 0, 0, time.UTC), false, true, -5},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			svc.now = func() time.Time { return c.now }
			resp, err := svc.VerificarAlertaCierre(context.Background(), turno.ID)
			require.NoError(t, err)
			assert.Equal(t, c.enAlerta, resp.EnAlerta)
			assert.Equal(t, c.bloqueado, resp.Bloqueado)
			assert.Equal(t, c.restantes, resp.MinutosRestantes)
		})
	}
}

func TestTurnoNoEncontrado(t *testing.T) {
	svc, _ := newTurnoFixture(t)
	var nf *NotFoundError

	_, err := svc.ObtenerPorID(context.Background(), 999)
	require.ErrorAs(t, err, &nf)
	require.ErrorAs(t, svc.Eliminar(context.Background(), 999), &nf)
}

func TestEsEstandar(t *testing.T) {
	for _, nombre := range model.TurnosEstandar {
		turno := model.Turno{Nombre: nombre}
		assert.True(t, turno.EsEstandar(), nombre)
	}
	assert.False(t, (&model.Turno{Nombre: "Especial"}).EsEstandar())
}
