// cmd/seed/main.go: loads sample categories and books.
// Usage: go run ./cmd/seed
//
// Entries go through the same validation and services as the HTTP API, so
// re-running the seed skips categories whose name already exists.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/config"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/dto"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/infra"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/repository"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/service"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type seedCategory struct {
	payload dto.Payload
	books   []dto.Payload
}

var catalog = []seedCategory{
	{
		payload: dto.Payload{"name": "science fiction", "description": "speculative stories about science and the future"},
		books: []dto.Payload{
			{"title": "Dune", "author": "Frank Herbert", "published_at": "1965-08-01", "is_active": true},
			{"title": "Foundation", "author": "Isaac Asimov", "published_at": "June 1, 1951"},
		},
	},
	{
		payload: dto.Payload{"name": "classics", "description": "books that outlived their century"},
		books: []dto.Payload{
			{"title": "Moby Dick", "author": "Herman Melville", "published_at": "1851-10-18"},
			{"title": "Don Quixote", "author": "Miguel de Cervantes", "published_at": "1605-01-16", "is_active": "0"},
		},
	},
	{
		payload: dto.Payload{"name": "history"},
	},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = log.With().Str("seed_run", uuid.NewString()).Logger().WithContext(ctx)

	db, err := infra.NewDatabase(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	categoryRepo := repository.NewCategoryRepository(db)
	categories := service.NewCategoryService(categoryRepo)
	books := service.NewBookService(repository.NewBookRepository(db))
	categoryRules := validation.NewCategoryValidator(categoryRepo)
	bookRules := validation.NewBookValidator(categoryRepo)

	created := 0
	for _, entry := range catalog {
		fields, err := categoryRules.ValidateCreate(ctx, entry.payload)
		if err != nil {
			skipOrDie(ctx, err, entry.payload)
			continue
		}
		category, err := categories.Store(ctx, fields)
		if err != nil {
			log.Ctx(ctx).Fatal().Err(err).Msg("store category")
		}
		created++

		for _, p := range entry.books {
			p["category_id"] = float64(category.ID)
			bookFields, err := bookRules.ValidateCreate(ctx, p)
			if err != nil {
				skipOrDie(ctx, err, p)
				continue
			}
			if _, err := books.Store(ctx, bookFields); err != nil {
				log.Ctx(ctx).Fatal().Err(err).Msg("store book")
			}
			created++
		}
	}
	log.Ctx(ctx).Info().Int("created", created).Msg("seed complete")
}

func skipOrDie(ctx context.Context, err error, p dto.Payload) {
	var failure *validation.Failure
	if errors.As(err, &failure) {
		log.Ctx(ctx).Warn().Interface("errors", failure.Errors).Interface("payload", p).Msg("skipped")
		return
	}
	log.Ctx(ctx).Fatal().Err(err).Msg("validate")
}
