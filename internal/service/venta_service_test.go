package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"colochas/internal/dto"
	"colochas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const fechaVenta = "2025-03-10"

var fechaVentaT = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type ventaFixture struct {
	svc           *ventaService
	ventas        *stubVentaRepo
	turnos        *stubTurnoRepo
	restricciones *stubRestriccionRepo
	auditoria     *stubAuditoriaRepo
	turno         *model.Turno
}

// newVentaFixture wires a ventaService over in-memory stubs with the
// clock pinned well after fechaVenta, so shift timing never interferes
// unless a test moves the clock on purpose.
func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	f := &ventaFixture{
		ventas:        newStubVentaRepo(),
		turnos:        newStubTurnoRepo(),
		restricciones: newStubRestriccionRepo(),
		auditoria:     newStubAuditoriaRepo(),
	}
	f.turno = turnoActivo(f.turnos, "6 PM", "18:00")
	f.svc = &ventaService{
		repo:            f.ventas,
		turnoRepo:       f.turnos,
		restriccionRepo: f.restricciones,
		auditoriaRepo:   f.auditoria,
		now: func() time.Time {
			return time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
		},
	}
	return f
}

func (f *ventaFixture) request(detalles ...dto.DetalleVentaRequest) dto.CrearVentaRequest {
	return dto.CrearVentaRequest{
		TurnoID:  f.turno.ID,
		Fecha:    fechaVenta,
		Detalles: detalles,
	}
}

func linea(numero int, monto string) dto.DetalleVentaRequest {
	return dto.DetalleVentaRequest{Numero: numero, Monto: decimal.RequireFromString(monto)}
}

func (f *ventaFixture) restringir(t *testing.T, r model.RestriccionNumero) {
	t.Helper()
	r.TurnoID = f.turno.ID
	r.Fecha = fechaVentaT
	r.EstaRestringido = true
	require.NoError(t, f.restricciones.Create(context.Background(), &r))
}

func TestCrearVentaTotalYBoucher(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.Crear(context.Background(), 7, f.request(
		linea(5, "100.00"),
		linea(23, "50.50"),
		linea(99, "25.25"),
	))
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.RequireFromString("175.75")))
	assert.Len(t, resp.Detalles, 3)
	assert.Equal(t, fechaVenta, resp.Fecha)
	assert.Regexp(t, regexp.MustCompile(`^B-20250310-[0-9A-F]{8}$`), resp.NumeroBoucher)

	// The audit row commits with the sale.
	require.Len(t, f.auditoria.registros, 1)
	assert.Equal(t, "crear_venta", f.auditoria.registros[0].Accion)
}

func TestCrearVentaAgrupaNumerosDuplicados(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.Crear(context.Background(), 7, f.request(
		linea(42, "30.00"),
		linea(42, "20.00"),
		linea(8, "10.00"),
	))
	require.NoError(t, err)

	// One detalle per distinct numero, montos summed, sorted by numero.
	require.Len(t, resp.Detalles, 2)
	assert.Equal(t, 8, resp.Detalles[0].Numero)
	assert.Equal(t, 42, resp.Detalles[1].Numero)
	assert.True(t, resp.Detalles[1].Monto.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("60.00")))
}

func TestCrearVentaDetallesInvalidos(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.Crear(context.Background(), 7, f.request(
		linea(100, "10.00"),
		linea(-1, "10.00"),
		linea(5, "0"),
		linea(6, "-3.00"),
	))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "detalles[0].numero")
	assert.Contains(t, verr.Fields, "detalles[1].numero")
	assert.Contains(t, verr.Fields, "detalles[2].monto")
	assert.Contains(t, verr.Fields, "detalles[3].monto")
	assert.Empty(t, f.ventas.ventas)
}

func TestCrearVentaTurnoInexistenteOInactivo(t *testing.T) {
	f := newVentaFixture(t)

	req := f.request(linea(1, "10.00"))
	req.TurnoID = 999
	_, err := f.svc.Crear(context.Background(), 7, req)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	f.turno.Estado = "inactivo"
	require.NoError(t, f.turnos.Update(context.Background(), f.turno))
	_, err = f.svc.Crear(context.Background(), 7, f.request(linea(1, "10.00")))
	var inv *InvalidStateError
	require.ErrorAs(t, err, &inv)
}

func TestCrearVentaHorarioBloqueado(t *testing.T) {
	f := newVentaFixture(t)
	req := f.request(linea(1, "10.00"))

	// HoraCierre 18:00, TiempoBloqueo 5 -> cutoff 17:55 on the sale's day.
	casos := []struct {
		nombre  string
		now     time.Time
		permite bool
	}{
		{"antes del corte", time.Date(2025, 3, 10, 17, 54, 59, 0, time.UTC), true},
		{"en el corte", time.Date(2025, 3, 10, 17, 55, 0, 0, time.UTC), false},
		{"despues del corte", time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC), false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			f.svc.now = func() time.Time { return c.now }
			_, err := f.svc.Crear(context.Background(), 7, req)
			if c.permite {
				assert.NoError(t, err)
			} else {
				var sc *ShiftClosedError
				require.ErrorAs(t, err, &sc)
				assert.Equal(t, "17:55", sc.HoraLimite)
			}
		})
	}
}

func TestCrearVentaHorarioConRelojNoUTC(t *testing.T) {
	f := newVentaFixture(t)
	local := time.FixedZone("UTC-6", -6*60*60)

	// Still the sale's calendar day even though the clock runs in UTC-6;
	// the 17:55 cutoff applies the same as with a UTC clock.
	f.svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 19, 0, 0, 0, local)
	}
	_, err := f.svc.Crear(context.Background(), 7, f.request(linea(1, "10.00")))
	var sc *ShiftClosedError
	require.ErrorAs(t, err, &sc)
	assert.Equal(t, "17:55", sc.HoraLimite)

	f.svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, local)
	}
	_, err = f.svc.Crear(context.Background(), 7, f.request(linea(1, "10.00")))
	assert.NoError(t, err)
}

func TestCrearVentaFechaHistoricaIgnoraHorario(t *testing.T) {
	f := newVentaFixture(t)
	// Clock is past the cutoff, but on a later day than the sale's fecha.
	f.svc.now = func() time.Time {
		return time.Date(2025, 3, 11, 23, 0, 0, 0, time.UTC)
	}

	_, err := f.svc.Crear(context.Background(), 7, f.request(linea(1, "10.00")))
	assert.NoError(t, err)
}

func TestCrearVentaNumeroBloqueado(t *testing.T) {
	f := newVentaFixture(t)
	f.restringir(t, model.RestriccionNumero{Numero: 13, TipoRestriccion: model.RestriccionCompleto})

	_, err := f.svc.Crear(context.Background(), 7, f.request(
		linea(13, "10.00"),
		linea(14, "10.00"),
	))

	var rerr *RestriccionNumeroError
	require.ErrorAs(t, err, &rerr)
	require.Len(t, rerr.Numeros, 1)
	assert.Equal(t, 13, rerr.Numeros[0].Numero)
	assert.Equal(t, MotivoBloqueado, rerr.Numeros[0].Motivo)
	// All-or-nothing: the clean line 14 was not persisted either.
	assert.Empty(t, f.ventas.ventas)
}

func TestCrearVentaLimiteMonto(t *testing.T) {
	f := newVentaFixture(t)
	f.restringir(t, model.RestriccionNumero{
		Numero:          7,
		TipoRestriccion: model.RestriccionMonto,
		LimiteMonto:     decp("100.00"),
	})

	// First sale consumes 60 of the 100 cap.
	_, err := f.svc.Crear(context.Background(), 1, f.request(linea(7, "60.00")))
	require.NoError(t, err)

	// 60 + 50 > 100: rejected.
	_, err = f.svc.Crear(context.Background(), 2, f.request(linea(7, "50.00")))
	var rerr *RestriccionNumeroError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, MotivoExcedeMonto, rerr.Numeros[0].Motivo)

	// 60 + 40 == 100: exactly at the cap still fits.
	_, err = f.svc.Crear(context.Background(), 2, f.request(linea(7, "40.00")))
	assert.NoError(t, err)

	// Cap exhausted.
	_, err = f.svc.Crear(context.Background(), 3, f.request(linea(7, "0.01")))
	require.ErrorAs(t, err, &rerr)
}

func TestCrearVentaLimiteCantidad(t *testing.T) {
	f := newVentaFixture(t)
	f.restringir(t, model.RestriccionNumero{
		Numero:          50,
		TipoRestriccion: model.RestriccionCantidad,
		LimiteCantidad:  intp(2),
	})

	for i := 0; i < 2; i++ {
		_, err := f.svc.Crear(context.Background(), uint(i+1), f.request(linea(50, "5.00")))
		require.NoError(t, err)
	}

	_, err := f.svc.Crear(context.Background(), 3, f.request(linea(50, "5.00")))
	var rerr *RestriccionNumeroError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, MotivoExcedeCantidad, rerr.Numeros[0].Motivo)
}

func TestCrearVentaCantidadDuplicadosCuentanUno(t *testing.T) {
	f := newVentaFixture(t)
	f.restringir(t, model.RestriccionNumero{
		Numero:          50,
		TipoRestriccion: model.RestriccionCantidad,
		LimiteCantidad:  intp(1),
	})

	// Two request lines on one numero merge into a single detalle, which
	// fits a cap of 1.
	_, err := f.svc.Crear(context.Background(), 1, f.request(
		linea(50, "5.00"),
		linea(50, "3.00"),
	))
	assert.NoError(t, err)

	_, err = f.svc.Crear(context.Background(), 2, f.request(linea(50, "5.00")))
	var rerr *RestriccionNumeroError
	require.ErrorAs(t, err, &rerr)
}

func TestCrearVentaRestriccionDesactivadaNoAplica(t *testing.T) {
	f := newVentaFixture(t)
	r := model.RestriccionNumero{
		TurnoID:         f.turno.ID,
		Numero:          13,
		Fecha:           fechaVentaT,
		EstaRestringido: false,
		TipoRestriccion: model.RestriccionCompleto,
	}
	require.NoError(t, f.restricciones.Create(context.Background(), &r))

	_, err := f.svc.Crear(context.Background(), 7, f.request(linea(13, "10.00")))
	assert.NoError(t, err)
}

func TestCrearVentaReintentaBoucherDuplicado(t *testing.T) {
	f := newVentaFixture(t)
	f.ventas.createErrs = []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey}

	resp, err := f.svc.Crear(context.Background(), 7, f.request(linea(1, "10.00")))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.NumeroBoucher)
}

func TestCrearVentaBoucherAgotaIntentos(t *testing.T) {
	f := newVentaFixture(t)
	f.ventas.createErrs = []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey}

	_, err := f.svc.Crear(context.Background(), 7, f.request(linea(1, "10.00")))
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Empty(t, f.ventas.ventas)
}

func TestBuscarBoucher(t *testing.T) {
	f := newVentaFixture(t)
	creada, err := f.svc.Crear(context.Background(), 7, f.request(linea(1, "10.00")))
	require.NoError(t, err)

	resp, err := f.svc.BuscarBoucher(context.Background(), creada.NumeroBoucher)
	require.NoError(t, err)
	assert.Equal(t, creada.ID, resp.ID)

	_, err = f.svc.BuscarBoucher(context.Background(), "B-19990101-DEADBEEF")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestEliminarVenta(t *testing.T) {
	f := newVentaFixture(t)
	creada, err := f.svc.Crear(context.Background(), 7, f.request(linea(1, "10.00")))
	require.NoError(t, err)

	require.NoError(t, f.svc.Eliminar(context.Background(), 9, creada.ID))
	_, err = f.svc.ObtenerPorID(context.Background(), creada.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	err = f.svc.Eliminar(context.Background(), 9, creada.ID)
	require.ErrorAs(t, err, &nf)
}

func TestEliminarVentaLiberaCupo(t *testing.T) {
	f := newVentaFixture(t)
	f.restringir(t, model.RestriccionNumero{
		Numero:          7,
		TipoRestriccion: model.RestriccionMonto,
		LimiteMonto:     decp("100.00"),
	})

	primera, err := f.svc.Crear(context.Background(), 1, f.request(linea(7, "100.00")))
	require.NoError(t, err)

	_, err = f.svc.Crear(context.Background(), 2, f.request(linea(7, "10.00")))
	var rerr *RestriccionNumeroError
	require.ErrorAs(t, err, &rerr)

	// Caps run against committed rows, so deleting the sale frees the cap.
	require.NoError(t, f.svc.Eliminar(context.Background(), 9, primera.ID))
	_, err = f.svc.Crear(context.Background(), 2, f.request(linea(7, "10.00")))
	assert.NoError(t, err)
}
