package infra

import (
	"fmt"

	"colochas/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create / update all tables. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey instead of
// driver-specific errors.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations applies the schema. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Turno{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.RestriccionNumero{},
		&model.CierreTurno{},
		&model.Sorteo{},
		&model.Alerta{},
		&model.Auditoria{},
		&model.Configuracion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return seedTurnosEstandar(db)
}

// seedTurnosEstandar inserts the well-known shifts on first boot. Existing
// rows are left untouched so operator edits survive restarts.
func seedTurnosEstandar(db *gorm.DB) error {
	horarios := map[string]struct{ hora, cierre string }{
		"12 MD":   {"10:00", "12:00"},
		"3 PM":    {"13:00", "15:00"},
		"6 PM":    {"16:00", "18:00"},
		"9 PM":    {"19:00", "21:00"},
		"1 PM":    {"11:00", "13:00"},
		"4:30 PM": {"14:30", "16:30"},
		"7:30 PM": {"17:30", "19:30"},
	}
	for _, nombre := range model.TurnosEstandar {
		var n int64
		if err := db.Model(&model.Turno{}).Where("nombre = ?", nombre).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		h := horarios[nombre]
		categoria := "diaria"
		if nombre == "1 PM" || nombre == "4:30 PM" || nombre == "7:30 PM" {
			categoria = "tica"
		}
		t := model.Turno{
			Nombre:        nombre,
			Categoria:     categoria,
			Hora:          h.hora,
			HoraCierre:    h.cierre,
			TiempoAlerta:  10,
			TiempoBloqueo: 5,
			Estado:        "activo",
		}
		if err := db.Create(&t).Error; err != nil {
			return err
		}
	}
	return nil
}
