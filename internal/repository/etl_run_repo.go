package repository

import (
	"context"

	"multilazos/internal/model"

	"gorm.io/gorm"
)

// EtlRunRepository audits stored-procedure invocations and runs them.
type EtlRunRepository interface {
	Create(ctx context.Context, run *model.EtlRun) error
	Finalizar(ctx context.Context, run *model.EtlRun) error
	// Ejecutar runs CALL proc(). proc must already be validated as an identifier.
	Ejecutar(ctx context.Context, proc string) (int64, error)
	ListRecientes(ctx context.Context, limit int) ([]model.EtlRun, error)
}

type etlRunRepo struct{ db *gorm.DB }

func NewEtlRunRepository(db *gorm.DB) EtlRunRepository { return &etlRunRepo{db: db} }

func (r *etlRunRepo) Create(ctx context.Context, run *model.EtlRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *etlRunRepo) Finalizar(ctx context.Context, run *model.EtlRun) error {
	return r.db.WithContext(ctx).Model(&model.EtlRun{}).
		Where("id = ?", run.ID).
		Updates(map[string]interface{}{
			"estado":          run.Estado,
			"filas_afectadas": run.FilasAfectadas,
			"mensaje":         run.Mensaje,
			"finalizado_en":   run.FinalizadoEn,
		}).Error
}

func (r *etlRunRepo) Ejecutar(ctx context.Context, proc string) (int64, error) {
	res := r.db.WithContext(ctx).Exec("CALL " + proc + "()")
	return res.RowsAffected, res.Error
}

func (r *etlRunRepo) ListRecientes(ctx context.Context, limit int) ([]model.EtlRun, error) {
	var runs []model.EtlRun
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
