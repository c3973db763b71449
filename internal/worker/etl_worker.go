package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"multilazos/internal/dto"

	"github.com/rs/zerolog/log"
)

// EtlJobPayload is the job envelope sent to QueueEtl.
type EtlJobPayload struct {
	Procs []string `json:"procs"`
	Actor string   `json:"actor"`
}

// EtlRunner executes the named procedures in order.
type EtlRunner func(ctx context.Context, procs []string, actor string) ([]dto.EtlResultado, error)

// NewEtlHandler adapts runner to the job interface. A run that stopped at a
// failing procedure is reported as an error so the pool retries it.
func NewEtlHandler(runner EtlRunner) JobHandler {
	return func(ctx context.Context, raw json.RawMessage) error {
		var payload EtlJobPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("etl_worker: invalid payload: %w", err)
		}
		resultados, err := runner(ctx, payload.Procs, payload.Actor)
		if err != nil {
			return err
		}
		log.Info().Int("procs", len(resultados)).Msg("etl_worker: run completed")
		return nil
	}
}
