package main

import (
	"context"
	"flag"
	"log"

	"github.com/UnknownOlympus/staffbook/internal/config"
	"github.com/UnknownOlympus/staffbook/internal/repository"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with goose migrations")
	down := flag.Bool("down", false, "roll back the latest migration instead of applying all")
	flag.Parse()

	cfg := config.MustLoad()

	dbpool, dbErr := repository.NewDatabase(context.Background(), repository.ConnString(cfg.Postgres))
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal(err)
	}

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	if *down {
		if err := goose.Down(dtb, *dir); err != nil {
			log.Fatal(err)
		}
		log.Println("Latest migration rolled back")
		return
	}

	if err := goose.Up(dtb, *dir); err != nil {
		log.Fatal(err)
	}

	log.Println("✅ Migrations applied successfully")
}
