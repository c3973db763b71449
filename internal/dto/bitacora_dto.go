package dto

import "encoding/json"

// BitacoraFilter is bound from query string of GET /v1/bitacora-ventas.
type BitacoraFilter struct {
	Page      int    `form:"page,default=1"          validate:"min=1"`
	PageSize  int    `form:"page_size,default=1000"  validate:"min=1,max=1000"`
	Q         string `form:"q"`
	Operacion string `form:"operacion"` // INSERT | UPDATE | DELETE
	Desde     string `form:"desde"`
	Hasta     string `form:"hasta"`
	VentaID   int    `form:"venta"`
}

type BitacoraResponse struct {
	ID              int             `json:"id_bitacora"`
	VentaID         int             `json:"id_venta"`
	Operacion       string          `json:"operacion"`
	DatosAnteriores json.RawMessage `json:"datos_anteriores"`
	DatosNuevos     json.RawMessage `json:"datos_nuevos"`
	UsuarioEvento   string          `json:"usuario_evento"`
	FechaEventoISO  string          `json:"fecha_evento_iso"` // YYYY-MM-DD HH:mm:ss
}

// ── ETL ───────────────────────────────────────────────────────────────────────

// EtlRunRequest names the stored procedures to run; empty means the configured
// default list. Async hands the run to the worker pool.
type EtlRunRequest struct {
	Procs []string `json:"procs" validate:"omitempty,dive,required,max=120"`
	Async bool     `json:"async"`
}

type EtlResultado struct {
	Proc    string `json:"proc"`
	Status  string `json:"status"`
	Rows    int64  `json:"rows"`
	Message string `json:"message"`
}

type EtlRunResponse struct {
	Detail  string         `json:"detail,omitempty"`
	Results []EtlResultado `json:"results,omitempty"`
	JobID   string         `json:"job_id,omitempty"`
}
