// Command main seeds the doctor directory and demo articles.
package main

import (
	"context"
	"flag"
	"log"

	"stuntcare/internal/bootstrap"
	"stuntcare/internal/config"
	"stuntcare/internal/seed"
)

func main() {
	numDoctors := flag.Int("doctors", 20, "number of doctors to create")
	numArticles := flag.Int("articles", 10, "number of demo articles to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	runtime, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := seed.Run(ctx, runtime.Store, seed.Options{
		NumDoctors:  *numDoctors,
		NumArticles: *numArticles,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d doctors and %d articles", *numDoctors, *numArticles)
}
