package model

import (
	"time"
)

// Usuario is a back-office operator. Sessions carry its Username, which is the
// actor stamped on every write.
type Usuario struct {
	ID           int    `gorm:"column:id_usuario;primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Nombre       string `gorm:"type:varchar(150);not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	EsStaff      bool   `gorm:"not null;default:false"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
