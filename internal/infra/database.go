package infra

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. The schema is
// managed exclusively by the SQL files in migrations/ (see RunMigrations);
// AutoMigrate is never used so that decimal precision, CHECK constraints and
// ON DELETE CASCADE stay under explicit control.
//
// TranslateError makes unique/foreign-key/check violations surface as
// gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated and
// gorm.ErrCheckConstraintViolated, which apierror classifies as integrity errors.
func NewDatabase(dsn string, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         NewGormLogger(level, 200*time.Millisecond),
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
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
