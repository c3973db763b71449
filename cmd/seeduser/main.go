// cmd/seeduser/main.go: Crea/actualiza un usuario del back-office.
// Uso: go run ./cmd/seeduser -username admin -password secreto [-nombre "Admin"] [-staff]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"multilazos/internal/config"
	"multilazos/internal/infra"
	"multilazos/internal/repository"
	"multilazos/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	username := flag.String("username", "admin", "username")
	password := flag.String("password", "", "password (min 4 chars)")
	nombre := flag.String("nombre", "", "display name (defaults to username)")
	staff := flag.Bool("staff", true, "mark as staff")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}

	svc := service.NewAuthService(repository.NewUsuarioRepository(db), cfg)
	if err := svc.CrearOActualizar(context.Background(), *username, *nombre, *password, *staff); err != nil {
		log.Fatal().Err(err).Msg("upsert error")
	}
	fmt.Printf("Usuario '%s' creado/actualizado\n", *username)
}
