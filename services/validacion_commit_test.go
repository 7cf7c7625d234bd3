package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"socios/constants"
	"socios/dto"
	"socios/services/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func servicioConMock(t *testing.T) (*ValidacionService, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)

	svc := NewValidacionService(ValidacionServiceOptions{
		DB:     db,
		Logger: logger.NewDefaultLogger(logger.ErrorLevel),
	})
	return svc, mock
}

func esperarCargas(mock sqlmock.Sqlmock, estadoSocio string, ultimoPago time.Time, limite, usos int) {
	mock.ExpectQuery(`SELECT .* FROM "socios"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "nombre", "estado", "estado_membresia", "asociacion_id", "fecha_alta", "fecha_ultimo_pago"}).
			AddRow(7, "Ana", estadoSocio, constants.MembresiaAlDia, 1, ultimoPago.AddDate(0, -6, 0), ultimoPago))

	mock.ExpectQuery(`SELECT .* FROM "comercios"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}).AddRow(5, "Café Central"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "adhesions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT .* FROM "beneficios"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "titulo", "tipo_descuento", "descuento", "fecha_inicio", "fecha_fin", "comercio_id", "estado", "limite_usos", "usos_actuales"}).
			AddRow(9, "2x1 en café", constants.DescuentoPorcentaje, 10.0,
				time.Now().AddDate(0, 0, -7), time.Now().AddDate(0, 0, 7), 5,
				constants.BeneficioActivo, limite, usos))
}

func TestValidar_CommitExitosoEsUnaSolaTransaccion(t *testing.T) {
	svc, mock := servicioConMock(t)

	esperarCargas(mock, constants.SocioActivo, time.Now().AddDate(0, 0, -5), 3, 2)

	// Registro de uso, contador y último acceso entran juntos o no entran
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "beneficio_usos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "beneficios"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "socios"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payload, err := GenerarCodigoQR(5, uintPtr(9))
	require.NoError(t, err)

	res, err := svc.Validar(context.Background(), 7, dto.ValidarCodigoRequest{Payload: payload, MontoBase: 1000})
	require.NoError(t, err)
	assert.Equal(t, constants.ValidacionExitosa, res.Estado)
	assert.Empty(t, res.Motivo)
	assert.InDelta(t, 100.0, res.MontoDescuento, 0.001)
	assert.NotEmpty(t, res.Codigo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidar_CupoAgotadoEnCarreraRechazaSinIncrementar(t *testing.T) {
	svc, mock := servicioConMock(t)

	esperarCargas(mock, constants.SocioActivo, time.Now().AddDate(0, 0, -5), 3, 2)

	// La guarda usos_actuales < limite_usos pierde la carrera: 0 filas
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "beneficio_usos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "beneficios"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// El rechazo igual queda asentado para auditoría, fuera de la transacción
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "beneficio_usos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	payload, err := GenerarCodigoQR(5, uintPtr(9))
	require.NoError(t, err)

	res, err := svc.Validar(context.Background(), 7, dto.ValidarCodigoRequest{Payload: payload, MontoBase: 1000})
	require.NoError(t, err)
	assert.Equal(t, constants.ValidacionFallida, res.Estado)
	assert.Equal(t, constants.MotivoBeneficioNoDisponible, res.Motivo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidar_FalloDeCommitQuedaDistinguible(t *testing.T) {
	svc, mock := servicioConMock(t)

	esperarCargas(mock, constants.SocioActivo, time.Now().AddDate(0, 0, -5), 3, 2)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "beneficio_usos"`).
		WillReturnError(stderrors.New("disco lleno"))
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "beneficio_usos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	payload, err := GenerarCodigoQR(5, uintPtr(9))
	require.NoError(t, err)

	res, err := svc.Validar(context.Background(), 7, dto.ValidarCodigoRequest{Payload: payload, MontoBase: 1000})
	require.NoError(t, err)
	assert.Equal(t, constants.ValidacionFallida, res.Estado)
	assert.Equal(t, constants.MotivoErrorCommit, res.Motivo, "un fallo de escritura no es un rechazo limpio")
	assert.InDelta(t, 0.0, res.MontoDescuento, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidar_ReferenciaRotaNoAdelantaElMotivo(t *testing.T) {
	svc, mock := servicioConMock(t)

	mock.ExpectQuery(`SELECT .* FROM "socios"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "nombre", "estado", "estado_membresia", "asociacion_id"}).
			AddRow(7, "Ana", constants.SocioSuspendido, constants.MembresiaAlDia, 1))

	mock.ExpectQuery(`SELECT .* FROM "comercios"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}).AddRow(5, "Café Central"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "adhesions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// El beneficio del código no existe
	mock.ExpectQuery(`SELECT .* FROM "beneficios"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "beneficio_usos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	payload, err := GenerarCodigoQR(5, uintPtr(999))
	require.NoError(t, err)

	res, err := svc.Validar(context.Background(), 7, dto.ValidarCodigoRequest{Payload: payload})
	require.NoError(t, err)
	assert.Equal(t, constants.ValidacionFallida, res.Estado)
	assert.Equal(t, constants.MotivoNoAutorizado, res.Motivo,
		"el socio suspendido manda aunque el beneficio apuntado no exista")
	assert.NoError(t, mock.ExpectationsWereMet())
}
