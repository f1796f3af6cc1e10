// Comando migrate: aplica el esquema embebido o una migración nombrada sin levantar la API.
//
//	migrate up
//	migrate version
//	migrate ensure notes
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/myshop-pos/internal/application/usecase"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/myshop-pos/pkg/config"
	"github.com/jhoicas/myshop-pos/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "tiempo máximo de la operación")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "uso: %s [-timeout 1m] up | version | ensure <nombre>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		version, err := postgres.RunMigrations(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migrate up")
		}
		log.Info().Uint("version", version).Msg("esquema actualizado")
	case "version":
		version, dirty, err := postgres.MigrationVersion(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migrate version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión del esquema")
	case "ensure":
		name := flag.Arg(1)
		if name == "" {
			flag.Usage()
			os.Exit(2)
		}
		uc := usecase.NewMigrationUseCase(postgres.NewSchemaRepository(pool))
		res, err := uc.Apply(ctx, name)
		if err != nil {
			log.Fatal().Err(err).Str("migration", name).Msg("migración nombrada")
		}
		log.Info().
			Str("migration", res.Migration).
			Str("column", res.Table+"."+res.Column).
			Bool("applied", res.Applied).
			Msg("migración nombrada")
	default:
		log.Error().Str("command", cmd).Msg("comando desconocido")
		flag.Usage()
		os.Exit(2)
	}
}
