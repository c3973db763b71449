package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"multilazos/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEtlHandler_PasaProcsYActor(t *testing.T) {
	var procs []string
	var actor string
	h := NewEtlHandler(func(_ context.Context, p []string, a string) ([]dto.EtlResultado, error) {
		procs, actor = p, a
		return []dto.EtlResultado{{Proc: p[0], Status: "ok"}}, nil
	})

	raw, err := json.Marshal(EtlJobPayload{Procs: []string{"sp_a", "sp_b"}, Actor: "ana"})
	require.NoError(t, err)
	require.NoError(t, h(context.Background(), raw))
	assert.Equal(t, []string{"sp_a", "sp_b"}, procs)
	assert.Equal(t, "ana", actor)
}

func TestEtlHandler_FallaSeReintenta(t *testing.T) {
	boom := errors.New("al menos un SP falló")
	h := NewEtlHandler(func(context.Context, []string, string) ([]dto.EtlResultado, error) {
		return nil, boom
	})
	assert.ErrorIs(t, h(context.Background(), json.RawMessage(`{"procs":["sp_a"]}`)), boom)
}

func TestEtlHandler_PayloadInvalido(t *testing.T) {
	llamado := false
	h := NewEtlHandler(func(context.Context, []string, string) ([]dto.EtlResultado, error) {
		llamado = true
		return nil, nil
	})
	assert.Error(t, h(context.Background(), json.RawMessage(`{"procs":`)))
	assert.False(t, llamado)
}
