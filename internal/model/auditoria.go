package model

import "time"

// Auditoria holds the creation/modification stamps shared by every writable table.
// Usuario* carries the session username, or the fallback actor when anonymous.
type Auditoria struct {
	FechaCreacion       *time.Time `gorm:"column:fecha_creacion"                    json:"fecha_creacion,omitempty"`
	UsuarioCreacion     *string    `gorm:"column:usuario_creacion;type:varchar(150)" json:"usuario_creacion,omitempty"`
	FechaModificacion   *time.Time `gorm:"column:fecha_modificacion"                json:"fecha_modificacion,omitempty"`
	UsuarioModificacion *string    `gorm:"column:usuario_modificacion;type:varchar(150)" json:"usuario_modificacion,omitempty"`
}

// Creado stamps the creation fields.
func (a *Auditoria) Creado(usuario string, ahora time.Time) {
	a.FechaCreacion = &ahora
	a.UsuarioCreacion = &usuario
}

// Modificado stamps the modification fields.
func (a *Auditoria) Modificado(usuario string, ahora time.Time) {
	a.FechaModificacion = &ahora
	a.UsuarioModificacion = &usuario
}
