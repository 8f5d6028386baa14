package service

import (
	"context"
	"testing"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alertaFixture struct {
	svc     *alertaService
	alertas *stubAlertaRepo
	turnos  *stubTurnoRepo
	ventas  *stubVentaRepo
	turno   *model.Turno
}

func newAlertaFixture(t *testing.T) *alertaFixture {
	t.Helper()
	f := &alertaFixture{
		alertas: newStubAlertaRepo(),
		turnos:  newStubTurnoRepo(),
		ventas:  newStubVentaRepo(),
	}
	f.turno = turnoActivo(f.turnos, "6 PM", "18:00") // alerta 10, bloqueo 5
	f.svc = &alertaService{
		repo:      f.alertas,
		turnoRepo: f.turnos,
		ventaRepo: f.ventas,
		// 17:52: inside the 10-minute alert window before 18:00.
		now: func() time.Time {
			return time.Date(2025, 3, 10, 17, 52, 0, 0, time.UTC)
		},
	}
	return f
}

// venderHoy records a committed sale for usuarioID on today's fecha.
func (f *alertaFixture) venderHoy(t *testing.T, usuarioID uint) {
	t.Helper()
	v := model.Venta{
		TurnoID:       f.turno.ID,
		UsuarioID:     usuarioID,
		Fecha:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Total:         decimal.RequireFromString("10.00"),
		NumeroBoucher: generarBoucher(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		Detalles:      []model.DetalleVenta{{Numero: 1, Monto: decimal.RequireFromString("10.00")}},
	}
	require.NoError(t, f.ventas.Create(context.Background(), nil, &v))
}

func TestGenerarAlertasCierre(t *testing.T) {
	f := newAlertaFixture(t)
	f.venderHoy(t, 1)
	f.venderHoy(t, 2)
	f.venderHoy(t, 1) // second sale of user 1 must not duplicate the alerta

	creadas, err := f.svc.GenerarAlertasCierre(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, creadas)

	alertasUsuario1, err := f.svc.Listar(context.Background(), 1, model.AlertaActiva)
	require.NoError(t, err)
	require.Len(t, alertasUsuario1, 1)
	assert.Equal(t, AlertaTipoCierre, alertasUsuario1[0].Tipo)

	// A second pass within the same window creates nothing new.
	creadas, err = f.svc.GenerarAlertasCierre(context.Background())
	require.NoError(t, err)
	assert.Zero(t, creadas)
}

func TestGenerarAlertasRelojNoUTC(t *testing.T) {
	f := newAlertaFixture(t)
	f.venderHoy(t, 1)

	// The venta's fecha is stored at UTC midnight; a clock running in
	// UTC-6 on the same calendar day must still find it.
	local := time.FixedZone("UTC-6", -6*60*60)
	f.svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 17, 52, 0, 0, local)
	}

	creadas, err := f.svc.GenerarAlertasCierre(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, creadas)
}

func TestGenerarAlertasFueraDeVentana(t *testing.T) {
	f := newAlertaFixture(t)
	f.venderHoy(t, 1)

	casos := []struct {
		nombre string
		now    time.Time
	}{
		{"antes de la ventana", time.Date(2025, 3, 10, 17, 40, 0, 0, time.UTC)},
		{"turno ya cerrado", time.Date(2025, 3, 10, 18, 1, 0, 0, time.UTC)},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			f.svc.now = func() time.Time { return c.now }
			creadas, err := f.svc.GenerarAlertasCierre(context.Background())
			require.NoError(t, err)
			assert.Zero(t, creadas)
		})
	}
}

func TestGenerarAlertasIgnoraTurnosInactivos(t *testing.T) {
	f := newAlertaFixture(t)
	f.venderHoy(t, 1)
	f.turno.Estado = "inactivo"
	require.NoError(t, f.turnos.Update(context.Background(), f.turno))

	creadas, err := f.svc.GenerarAlertasCierre(context.Background())
	require.NoError(t, err)
	assert.Zero(t, creadas)
}

func TestMarcarAlerta(t *testing.T) {
	f := newAlertaFixture(t)
	f.venderHoy(t, 1)
	_, err := f.svc.GenerarAlertasCierre(context.Background())
	require.NoError(t, err)

	listado, err := f.svc.Listar(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, listado, 1)
	id := listado[0].ID

	vista, err := f.svc.Marcar(context.Background(), 1, id, dto.MarcarAlertaRequest{Accion: "vista"})
	require.NoError(t, err)
	assert.Equal(t, model.AlertaVista, vista.Estado)

	resuelta, err := f.svc.Marcar(context.Background(), 1, id, dto.MarcarAlertaRequest{Accion: "resuelta"})
	require.NoError(t, err)
	assert.Equal(t, model.AlertaResuelta, resuelta.Estado)

	// Resolution is terminal.
	_, err = f.svc.Marcar(context.Background(), 1, id, dto.MarcarAlertaRequest{Accion: "vista"})
	var inv *InvalidStateError
	require.ErrorAs(t, err, &inv)
}

func TestMarcarResueltaDirectoFijaVistaEn(t *testing.T) {
	f := newAlertaFixture(t)
	f.venderHoy(t, 1)
	_, err := f.svc.GenerarAlertasCierre(context.Background())
	require.NoError(t, err)

	listado, err := f.svc.Listar(context.Background(), 1, "")
	require.NoError(t, err)
	id := listado[0].ID

	_, err = f.svc.Marcar(context.Background(), 1, id, dto.MarcarAlertaRequest{Accion: "resuelta"})
	require.NoError(t, err)

	guardada, err := f.alertas.FindByIDForUsuario(context.Background(), id, 1)
	require.NoError(t, err)
	require.NotNil(t, guardada.VistaEn)
	require.NotNil(t, guardada.ResueltaEn)
}

func TestAlertasAjenasInvisibles(t *testing.T) {
	f := newAlertaFixture(t)
	f.venderHoy(t, 1)
	_, err := f.svc.GenerarAlertasCierre(context.Background())
	require.NoError(t, err)

	listado, err := f.svc.Listar(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, listado, 1)

	// Another user can neither list nor mark it.
	ajenas, err := f.svc.Listar(context.Background(), 2, "")
	require.NoError(t, err)
	assert.Empty(t, ajenas)

	_, err = f.svc.Marcar(context.Background(), 2, listado[0].ID, dto.MarcarAlertaRequest{Accion: "vista"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestListarAlertasEstadoInvalido(t *testing.T) {
	f := newAlertaFixture(t)
	_, err := f.svc.Listar(context.Background(), 1, "pendiente")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
