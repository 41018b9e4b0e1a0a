package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"hsho_live_api/internal/store"
)

// Applies the schema (and seed) to DATABASE_URL without starting the server.
// The server does the same at startup; this exists for provisioning a fresh
// database ahead of a deploy.
func main() {
	strict := flag.Bool("strict-ssl", false, "verify the database certificate chain")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := store.NewPostgres(ctx, dsn, *strict)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	log.Println("schema ensured")
}
