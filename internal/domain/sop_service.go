package domain

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sopdesk/sopdesk/internal/models"
	"github.com/sopdesk/sopdesk/internal/ports"
)

var (
	// ErrNotFound means no record matched a single-row lookup.
	ErrNotFound = errors.New("sop not found")

	// ErrMissingID means the caller did not supply an identifier.
	ErrMissingID = errors.New("id is required")
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type SopService struct {
	repo     ports.SopRepository
	resolver *LinkResolver
	log      *zap.SugaredLogger
}

func NewSopService(repo ports.SopRepository, resolver *LinkResolver, log *zap.SugaredLogger) *SopService {
	return &SopService{
		repo:     repo,
		resolver: resolver,
		log:      log,
	}
}

// List returns one window of records, newest first, each enriched with a
// signed audio link. Enrichment fans out per record and fans back in
// preserving the store's row order.
func (s *SopService) List(ctx context.Context, page, limit int) ([]models.Record, models.Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	window := models.Page{Page: page, Limit: limit}

	rows, total, err := s.repo.List(ctx, window.Offset(), limit)
	if err != nil {
		return nil, models.Page{}, err
	}

	enriched := make([]models.Record, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range rows {
		i, rec := i, rec
		g.Go(func() error {
			enriched[i] = s.enrich(gctx, rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, models.Page{}, err
	}

	window.Total = total
	window.TotalPages = (total + limit - 1) / limit
	return enriched, window, nil
}

// GetByID looks up a single record and enriches it. An empty id is
// rejected before the store is touched; zero matching rows is NotFound,
// not a system error.
func (s *SopService) GetByID(ctx context.Context, id string) (models.Record, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	return s.enrich(ctx, rec), nil
}

// enrich copies rec and attaches the signed link field. The field is
// always present, null when the record has no asset; the source record
// is never mutated.
func (s *SopService) enrich(ctx context.Context, rec models.Record) models.Record {
	out := make(models.Record, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}

	out[models.FieldSignedAudioURL] = nil
	if ref := rec.AudioURL(); ref != "" {
		out[models.FieldSignedAudioURL] = s.resolver.Resolve(ctx, ref)
	}
	return out
}
