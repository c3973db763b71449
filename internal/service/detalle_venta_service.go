package service

import (
	"context"
	"errors"
	"time"

	"multilazos/internal/apierror"
	"multilazos/internal/dto"
	"multilazos/internal/model"
	"multilazos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgProductoDuplicado = "Este producto ya existe en la venta."

// DetalleVentaService maintains the line items of a sale. Every mutation
// recalculates the sale total in the same transaction.
type DetalleVentaService interface {
	Agregar(ctx context.Context, ventaID int, req dto.AgregarDetalleRequest, actor string) (*dto.DetalleVentaResponse, error)
	ActualizarCantidad(ctx context.Context, ventaID, detalleID int, cantidad decimal.Decimal, actor string) (*dto.DetalleVentaResponse, error)
	Eliminar(ctx context.Context, ventaID, detalleID int) error
	Listar(ctx context.Context, ventaID int) (*dto.DetalleVentaListResponse, error)
}

type detalleVentaService struct {
	ventas    repository.VentaRepository
	detalles  repository.DetalleVentaRepository
	productos repository.ProductoRepository
	recalc    *Recalculador
}

func NewDetalleVentaService(
	ventas repository.VentaRepository,
	detalles repository.DetalleVentaRepository,
	productos repository.ProductoRepository,
	recalc *Recalculador,
) DetalleVentaService {
	return &detalleVentaService{ventas: ventas, detalles: detalles, productos: productos, recalc: recalc}
}

// normalizarCantidad rejects non-positive values and quantities finer than
// the stored scale.
func normalizarCantidad(cantidad decimal.Decimal, msg string) (decimal.Decimal, error) {
	if !cantidad.IsPositive() {
		return decimal.Zero, apierror.Validacion(msg)
	}
	if err := dosDecimales("cantidad", cantidad); err != nil {
		return decimal.Zero, err
	}
	return cantidad.Round(2), nil
}

// nuevoDetalle builds a line item priced from the product's current values;
// prices are never taken from the caller.
func nuevoDetalle(ventaID int, p *model.Producto, cantidad decimal.Decimal, actor string, ahora time.Time) *model.DetalleVenta {
	d := &model.DetalleVenta{
		VentaID:            ventaID,
		ProductoID:         p.ID,
		Cantidad:           cantidad,
		PrecioUnitario:     p.PrecioUnitario,
		CostoUnitarioVenta: p.CostoUnitario,
		Subtotal:           cantidad.Mul(p.PrecioUnitario).Round(2),
		Producto:           p,
	}
	d.Creado(actor, ahora)
	return d
}

// insertarDetalle checks uniqueness of the product in the sale and inserts d.
func insertarDetalle(ctx context.Context, tx *gorm.DB, detalles repository.DetalleVentaRepository, d *model.DetalleVenta) error {
	existe, err := detalles.ExisteProducto(ctx, tx, d.VentaID, d.ProductoID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Integridad(msgProductoDuplicado, nil)
	}
	if err := detalles.Create(ctx, tx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.Integridad(msgProductoDuplicado, err)
		}
		return err
	}
	return nil
}

func (s *detalleVentaService) Agregar(ctx context.Context, ventaID int, req dto.AgregarDetalleRequest, actor string) (*dto.DetalleVentaResponse, error) {
	if _, err := s.ventas.FindByID(ctx, nil, ventaID); err != nil {
		return nil, noEncontrado(err, "Venta no encontrada")
	}
	producto, err := s.productos.FindByID(ctx, nil, req.ProductoID)
	if err != nil {
		return nil, referenciaInvalida(err, "Producto inválido.")
	}
	cantidad, err := normalizarCantidad(req.Cantidad, "La cantidad debe ser > 0.")
	if err != nil {
		return nil, err
	}

	d := nuevoDetalle(ventaID, producto, cantidad, actor, time.Now())
	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if err := insertarDetalle(ctx, tx, s.detalles, d); err != nil {
			return err
		}
		_, err := s.recalc.RecalcularTotal(ctx, tx, ventaID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toDetalleResponse(*d)
	return &resp, nil
}

func (s *detalleVentaService) ActualizarCantidad(ctx context.Context, ventaID, detalleID int, cantidad decimal.Decimal, actor string) (*dto.DetalleVentaResponse, error) {
	d, err := s.detalles.FindByID(ctx, nil, ventaID, detalleID)
	if err != nil {
		return nil, noEncontrado(err, "Detalle no encontrado")
	}
	c, err := normalizarCantidad(cantidad, "cantidad debe ser > 0.")
	if err != nil {
		return nil, err
	}

	d.Cantidad = c
	d.Subtotal = c.Mul(d.PrecioUnitario).Round(2)
	d.Modificado(actor, time.Now())
	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if err := s.detalles.UpdateCantidad(ctx, tx, d); err != nil {
			return noEncontrado(err, "Detalle no encontrado")
		}
		_, err := s.recalc.RecalcularTotal(ctx, tx, ventaID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toDetalleResponse(*d)
	return &resp, nil
}

func (s *detalleVentaService) Eliminar(ctx context.Context, ventaID, detalleID int) error {
	return runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if err := s.detalles.Delete(ctx, tx, ventaID, detalleID); err != nil {
			return noEncontrado(err, "Detalle no encontrado")
		}
		_, err := s.recalc.RecalcularTotal(ctx, tx, ventaID)
		return err
	})
}

// Listar returns the items with the running subtotal of the sale, which does
// not include interest and is independent of the persisted header total.
func (s *detalleVentaService) Listar(ctx context.Context, ventaID int) (*dto.DetalleVentaListResponse, error) {
	if _, err := s.ventas.FindByID(ctx, nil, ventaID); err != nil {
		return nil, noEncontrado(err, "Venta no encontrada")
	}
	items, err := s.detalles.ListByVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	subtotal, err := s.detalles.SumSubtotal(ctx, nil, ventaID)
	if err != nil {
		return nil, err
	}

	results := make([]dto.DetalleVentaResponse, len(items))
	for i, d := range items {
		results[i] = toDetalleResponse(d)
	}
	return &dto.DetalleVentaListResponse{
		Count:    len(results),
		Subtotal: dinero(subtotal),
		Results:  results,
	}, nil
}

func toDetalleResponse(d model.DetalleVenta) dto.DetalleVentaResponse {
	r := dto.DetalleVentaResponse{
		ID:                 d.ID,
		ProductoID:         d.ProductoID,
		Cantidad:           dinero(d.Cantidad),
		PrecioUnitario:     dinero(d.PrecioUnitario),
		CostoUnitarioVenta: dinero(d.CostoUnitarioVenta),
		Subtotal:           dinero(d.Subtotal),
	}
	if d.Producto != nil {
		r.Producto = d.Producto.Nombre
	}
	return r
}
