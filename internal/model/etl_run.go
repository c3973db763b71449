package model

import "time"

// Estados of an ETL run.
const (
	EtlEnCurso = "running"
	EtlOK      = "ok"
	EtlError   = "error"
)

// EtlRun audits one stored-procedure invocation, successful or not.
type EtlRun struct {
	ID             int        `gorm:"column:id;primaryKey;autoIncrement"`
	Proceso        string     `gorm:"column:proceso;type:varchar(120);not null"`
	Estado         string     `gorm:"column:estado;type:varchar(20);not null;default:'running'"`
	FilasAfectadas int64      `gorm:"column:filas_afectadas;not null;default:0"`
	Mensaje        string     `gorm:"column:mensaje;type:varchar(500);not null;default:''"`
	Usuario        *string    `gorm:"column:usuario;type:varchar(150)"`
	IniciadoEn     time.Time  `gorm:"column:iniciado_en;not null"`
	FinalizadoEn   *time.Time `gorm:"column:finalizado_en"`
}

func (EtlRun) TableName() string { return "etl_runs" }
