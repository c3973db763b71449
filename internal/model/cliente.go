package model

// Cliente is a customer; its TipoCliente decides the interest of credit sales.
type Cliente struct {
	ID            int    `gorm:"column:id_cliente;primaryKey;autoIncrement"`
	Nombre        string `gorm:"column:nombre_cliente;type:varchar(100);not null"`
	Apellido      string `gorm:"column:apellido_cliente;type:varchar(100);not null"`
	TipoClienteID int    `gorm:"column:id_tipo_cliente;not null;index"`
	Auditoria     `gorm:"embedded"`

	TipoCliente *TipoCliente `gorm:"foreignKey:TipoClienteID;references:ID"`
}

func (Cliente) TableName() string { return "clientes" }

// NombreCompleto joins first and last name.
func (c Cliente) NombreCompleto() string { return c.Nombre + " " + c.Apellido }
