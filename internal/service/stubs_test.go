package service_test

import (
	"context"
	"strings"
	"time"

	"multilazos/internal/dto"
	"multilazos/internal/model"
	"multilazos/internal/repository"
	"multilazos/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubVentaRepo is an in-memory VentaRepository. It hands out copies so that
// services only change state through the repository methods.
type stubVentaRepo struct {
	ventas map[int]*model.Venta
	seq    int
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[int]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.seq++
	v.ID = r.seq
	c := *v
	r.ventas[v.ID] = &c
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, _ *gorm.DB, id int) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *v
	return &c, nil
}

func (r *stubVentaRepo) UpdateHeader(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	actual, ok := r.ventas[v.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	actual.ClienteID = v.ClienteID
	actual.TipoTransaccionID = v.TipoTransaccionID
	actual.FechaID = v.FechaID
	actual.PlazoMes = v.PlazoMes
	actual.Interes = v.Interes
	return nil
}

func (r *stubVentaRepo) UpdateTotal(_ context.Context, _ *gorm.DB, id int, total decimal.Decimal, ahora time.Time) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.TotalVentaFinal = total
	v.FechaModificacion = &ahora
	return nil
}

func (r *stubVentaRepo) Delete(_ context.Context, _ *gorm.DB, id int) error {
	if _, ok := r.ventas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) TotalesPorMes(_ context.Context) ([]repository.TotalMes, error) {
	return nil, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// stubDetalleRepo enforces the (venta, producto) uniqueness like the store does.
type stubDetalleRepo struct {
	items map[int]*model.DetalleVenta
	seq   int
}

func newStubDetalleRepo() *stubDetalleRepo {
	return &stubDetalleRepo{items: make(map[int]*model.DetalleVenta)}
}

func (r *stubDetalleRepo) Create(_ context.Context, _ *gorm.DB, d *model.DetalleVenta) error {
	for _, it := range r.items {
		if it.VentaID == d.VentaID && it.ProductoID == d.ProductoID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	d.ID = r.seq
	c := *d
	r.items[d.ID] = &c
	return nil
}

func (r *stubDetalleRepo) FindByID(_ context.Context, _ *gorm.DB, ventaID, id int) (*model.DetalleVenta, error) {
	d, ok := r.items[id]
	if !ok || d.VentaID != ventaID {
		return nil, gorm.ErrRecordNotFound
	}
	c := *d
	return &c, nil
}

func (r *stubDetalleRepo) ExisteProducto(_ context.Context, _ *gorm.DB, ventaID, productoID int) (bool, error) {
	for _, it := range r.items {
		if it.VentaID == ventaID && it.ProductoID == productoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubDetalleRepo) UpdateCantidad(_ context.Context, _ *gorm.DB, d *model.DetalleVenta) error {
	it, ok := r.items[d.ID]
	if !ok || it.VentaID != d.VentaID {
		return gorm.ErrRecordNotFound
	}
	it.Cantidad = d.Cantidad
	it.Subtotal = d.Subtotal
	return nil
}

func (r *stubDetalleRepo) Delete(_ context.Context, _ *gorm.DB, ventaID, id int) error {
	it, ok := r.items[id]
	if !ok || it.VentaID != ventaID {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubDetalleRepo) ListByVenta(_ context.Context, ventaID int) ([]model.DetalleVenta, error) {
	var out []model.DetalleVenta
	for _, it := range r.items {
		if it.VentaID == ventaID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubDetalleRepo) SumSubtotal(_ context.Context, _ *gorm.DB, ventaID int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range r.items {
		if it.VentaID == ventaID {
			total = total.Add(it.Subtotal)
		}
	}
	return total, nil
}

func (r *stubDetalleRepo) count(ventaID int) int {
	n := 0
	for _, it := range r.items {
		if it.VentaID == ventaID {
			n++
		}
	}
	return n
}

var _ repository.DetalleVentaRepository = (*stubDetalleRepo)(nil)

type stubProductoRepo struct {
	productos map[int]*model.Producto
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	p.ID = len(r.productos) + 1
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, _ *gorm.DB, id int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	return nil, 0, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id int) error {
	delete(r.productos, id)
	return nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

type stubClienteRepo struct {
	clientes map[int]*model.Cliente
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	c.ID = len(r.clientes) + 1
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, _ *gorm.DB, id int) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	return nil, 0, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.clientes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// stubCatalogo is a generic in-memory lookup table.
type stubCatalogo[T any, PT interface {
	*T
	model.Catalogo
}] struct {
	items map[int]*T
	seq   int
}

func newStubCatalogo[T any, PT interface {
	*T
	model.Catalogo
}](items ...*T) *stubCatalogo[T, PT] {
	s := &stubCatalogo[T, PT]{items: make(map[int]*T)}
	for _, it := range items {
		if err := s.Crear(context.Background(), it); err != nil {
			panic(err)
		}
	}
	return s
}

func (s *stubCatalogo[T, PT]) Crear(_ context.Context, c *T) error {
	if PT(c).GetID() == 0 {
		s.seq++
		PT(c).SetID(s.seq)
	}
	s.seq = max(s.seq, PT(c).GetID())
	s.items[PT(c).GetID()] = c
	return nil
}

func (s *stubCatalogo[T, PT]) Listar(_ context.Context, search string, offset, limit int) ([]T, int64, error) {
	var out []T
	for _, it := range s.items {
		if search == "" || strings.Contains(strings.ToLower(PT(it).GetNombre()), strings.ToLower(search)) {
			out = append(out, *it)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubCatalogo[T, PT]) ObtenerPorID(_ context.Context, id int) (*T, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *it
	return &c, nil
}

func (s *stubCatalogo[T, PT]) ObtenerPorNombre(_ context.Context, nombre string) (*T, error) {
	for _, it := range s.items {
		if strings.EqualFold(PT(it).GetNombre(), nombre) {
			c := *it
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogo[T, PT]) Actualizar(_ context.Context, c *T) error {
	s.items[PT(c).GetID()] = c
	return nil
}

func (s *stubCatalogo[T, PT]) Eliminar(_ context.Context, id int) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}

// stubDimFecha holds a contiguous calendar with keys YYYYMMDD.
type stubDimFecha struct {
	porFecha map[string]int
	porID    map[int]time.Time
}

func newStubDimFecha(desde, hasta time.Time) *stubDimFecha {
	s := &stubDimFecha{porFecha: map[string]int{}, porID: map[int]time.Time{}}
	for d := desde; !d.After(hasta); d = d.AddDate(0, 0, 1) {
		s.add(d)
	}
	return s
}

func (s *stubDimFecha) add(d time.Time) {
	d = model.SoloFecha(d)
	id := d.Year()*10000 + int(d.Month())*100 + d.Day()
	s.porFecha[d.Format(time.DateOnly)] = id
	s.porID[id] = d
}

func (s *stubDimFecha) remove(d time.Time) {
	iso := d.Format(time.DateOnly)
	delete(s.porID, s.porFecha[iso])
	delete(s.porFecha, iso)
}

func (s *stubDimFecha) FindIDByFecha(_ context.Context, fecha time.Time) (int, error) {
	id, ok := s.porFecha[fecha.Format(time.DateOnly)]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return id, nil
}

func (s *stubDimFecha) FindFechaByID(_ context.Context, id int) (time.Time, error) {
	f, ok := s.porID[id]
	if !ok {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return f, nil
}

var _ repository.DimFechaRepository = (*stubDimFecha)(nil)

type stubCuotaRepo struct {
	cuotas []model.CuotaCredito
}

func (r *stubCuotaRepo) CountByVenta(_ context.Context, _ *gorm.DB, ventaID int) (int64, error) {
	return int64(len(r.deVenta(ventaID))), nil
}

func (r *stubCuotaRepo) CreateBatch(_ context.Context, _ *gorm.DB, cuotas []model.CuotaCredito) error {
	for _, c := range cuotas {
		for _, e := range r.cuotas {
			if e.VentaID == c.VentaID && e.NumeroCuota == c.NumeroCuota {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	for _, c := range cuotas {
		c.ID = len(r.cuotas) + 1
		r.cuotas = append(r.cuotas, c)
	}
	return nil
}

func (r *stubCuotaRepo) FindByID(_ context.Context, id int) (*model.CuotaCredito, error) {
	for _, c := range r.cuotas {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCuotaRepo) List(_ context.Context, q repository.CuotaQuery) ([]model.CuotaCredito, error) {
	if q.VentaID > 0 {
		return r.deVenta(q.VentaID), nil
	}
	return r.cuotas, nil
}

func (r *stubCuotaRepo) deVenta(ventaID int) []model.CuotaCredito {
	var out []model.CuotaCredito
	for _, c := range r.cuotas {
		if c.VentaID == ventaID {
			out = append(out, c)
		}
	}
	return out
}

var _ repository.CuotaRepository = (*stubCuotaRepo)(nil)

type stubPagoRepo struct {
	pagos []model.Pago
}

func (r *stubPagoRepo) Create(_ context.Context, _ *gorm.DB, p *model.Pago) error {
	p.ID = len(r.pagos) + 1
	r.pagos = append(r.pagos, *p)
	return nil
}

func (r *stubPagoRepo) ListByVenta(_ context.Context, ventaID int) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.VentaID == ventaID {
			out = append(out, p)
		}
	}
	return out, nil
}

var _ repository.PagoRepository = (*stubPagoRepo)(nil)

type stubBitacoraRepo struct {
	entradas []model.BitacoraVenta
}

func (r *stubBitacoraRepo) Create(_ context.Context, _ *gorm.DB, b *model.BitacoraVenta) error {
	b.ID = len(r.entradas) + 1
	r.entradas = append(r.entradas, *b)
	return nil
}

func (r *stubBitacoraRepo) List(_ context.Context, _ repository.BitacoraQuery) ([]model.BitacoraVenta, int64, error) {
	return r.entradas, int64(len(r.entradas)), nil
}

var _ repository.BitacoraRepository = (*stubBitacoraRepo)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

var (
	cero = decimal.Zero
	dec  = decimal.RequireFromString
)

const (
	clienteMinorista = 1 // tipo sin interés
	clienteMayorista = 2 // tipo con tasa 0.10 (10 %)

	prodDiez  = 1 // precio 10.00
	prodCinco = 2 // precio 5.00

	tipoContado = 1
	tipoCredito = 2
)

// ledger wires the sale services over in-memory stubs.
type ledger struct {
	ventas     *stubVentaRepo
	detalles   *stubDetalleRepo
	cuotas     *stubCuotaRepo
	pagos      *stubPagoRepo
	bitacora   *stubBitacoraRepo
	dimFecha   *stubDimFecha
	recalc     *service.Recalculador
	cuotaSvc   service.CuotaService
	detalleSvc service.DetalleVentaService
	ventaSvc   service.VentaService
}

func fecha(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func idFecha(s string) int {
	t := fecha(s)
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func newLedger() *ledger {
	l := &ledger{
		ventas:   newStubVentaRepo(),
		detalles: newStubDetalleRepo(),
		cuotas:   &stubCuotaRepo{},
		pagos:    &stubPagoRepo{},
		bitacora: &stubBitacoraRepo{},
		dimFecha: newStubDimFecha(fecha("2023-01-01"), fecha("2030-12-31")),
	}
	minorista := &model.TipoCliente{ID: clienteMinorista, Nombre: "Minorista", TasaInteresDefault: cero}
	mayorista := &model.TipoCliente{ID: clienteMayorista, Nombre: "Mayorista", TasaInteresDefault: dec("0.10")}
	clientes := &stubClienteRepo{clientes: map[int]*model.Cliente{
		1: {ID: 1, Nombre: "Ana", Apellido: "Pérez", TipoClienteID: clienteMinorista, TipoCliente: minorista},
		2: {ID: 2, Nombre: "Luis", Apellido: "Gómez", TipoClienteID: clienteMayorista, TipoCliente: mayorista},
	}}
	productos := &stubProductoRepo{productos: map[int]*model.Producto{
		prodDiez:  {ID: prodDiez, Nombre: "Lazo", PrecioUnitario: dec("10.00"), CostoUnitario: dec("6.00")},
		prodCinco: {ID: prodCinco, Nombre: "Cinta", PrecioUnitario: dec("5.00"), CostoUnitario: dec("2.50")},
	}}
	tipos := newStubCatalogo[model.TipoTransaccion, *model.TipoTransaccion](
		&model.TipoTransaccion{ID: tipoContado, Nombre: "Contado"},
		&model.TipoTransaccion{ID: tipoCredito, Nombre: "Crédito"},
	)

	l.recalc = service.NewRecalculador(l.ventas, l.detalles)
	l.cuotaSvc = service.NewCuotaService(l.cuotas, l.ventas, l.pagos, l.dimFecha)
	l.detalleSvc = service.NewDetalleVentaService(l.ventas, l.detalles, productos, l.recalc)
	l.ventaSvc = service.NewVentaService(l.ventas, l.detalles, productos, clientes, tipos,
		l.dimFecha, l.bitacora, l.pagos, l.recalc, l.cuotaSvc)
	return l
}

// nuevaVenta inserts a bare header directly through the repository.
func (l *ledger) nuevaVenta(tipo, plazo int, interes decimal.Decimal, fechaISO string) *model.Venta {
	v := &model.Venta{
		ClienteID:         1,
		TipoTransaccionID: tipo,
		FechaID:           idFecha(fechaISO),
		PlazoMes:          plazo,
		Interes:           interes,
	}
	if err := l.ventas.Create(context.Background(), nil, v); err != nil {
		panic(err)
	}
	return v
}

func (l *ledger) total(ventaID int) decimal.Decimal {
	return l.ventas.ventas[ventaID].TotalVentaFinal
}
