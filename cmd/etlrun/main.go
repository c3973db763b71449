// cmd/etlrun/main.go: Ejecuta procedimientos ETL desde la línea de comandos.
// Uso: go run ./cmd/etlrun -proc sp_etl_cargar_ventas [-proc otro]
// Sin -proc ejecuta la lista ETL_DEFAULT_PROCS.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"multilazos/internal/config"
	"multilazos/internal/infra"
	"multilazos/internal/repository"
	"multilazos/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type procsFlag []string

func (p *procsFlag) String() string { return strings.Join(*p, ",") }

func (p *procsFlag) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	var procs procsFlag
	flag.Var(&procs, "proc", "stored procedure to run (repeatable)")
	actor := flag.String("user", "etl-cli", "actor recorded in etl_runs")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	svc := service.NewEtlService(repository.NewEtlRunRepository(db), nil, cfg.ProcsETL())
	results, err := svc.Ejecutar(context.Background(), procs, *actor)
	for _, r := range results {
		fmt.Printf("%-40s %-6s rows=%d %s\n", r.Proc, r.Status, r.Rows, r.Message)
	}
	if err != nil {
		if !errors.Is(err, service.ErrEtlParcial) {
			log.Error().Err(err).Msg("etl run rejected")
		}
		os.Exit(1)
	}
}
