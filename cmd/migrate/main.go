package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go-bakery/internal/shared/config"
	"go-bakery/internal/shared/logger"
	"go-bakery/internal/shared/migration"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("path", "migrations", "directory holding the *.sql migration files")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [-path dir] up | down | steps N | version")
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer log.Sync()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := migration.New(cfg.Database.URL(), *path, log)
	if err != nil {
		log.Fatal("open migrations failed", zap.Error(err))
	}
	defer m.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		n, convErr := strconv.Atoi(flag.Arg(1))
		if convErr != nil || n == 0 {
			log.Fatal("steps needs a non-zero integer", zap.String("arg", flag.Arg(1)))
		}
		err = m.Steps(n)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			err = verr
			break
		}
		log.Info("current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}
