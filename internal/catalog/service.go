package catalog

import (
	"context"
	"errors"

	"github.com/mgleavitt/lockquests/internal/models"
	appErrors "github.com/mgleavitt/lockquests/pkg/errors"
)

// Service is the read surface the HTTP handlers consume: filtered lists,
// per-id lookups, and aggregate stats over the loaded room set.
type Service struct {
	loader     *Loader
	configured bool
}

// NewService wires the catalog service. configured reflects whether a real
// source sheet was supplied; when false every read short-circuits with the
// setup state before any fetch is attempted.
func NewService(loader *Loader, configured bool) (*Service, error) {
	if loader == nil {
		return nil, errors.New("catalog service: loader is required")
	}
	return &Service{loader: loader, configured: configured}, nil
}

// Configured reports whether the service has a usable source.
func (s *Service) Configured() bool {
	return s.configured
}

// List returns the rooms matching the criteria plus the unfiltered total.
func (s *Service) List(ctx context.Context, criteria Criteria) ([]models.Room, int, error) {
	rooms, err := s.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	return Apply(rooms, criteria), len(rooms), nil
}

// Get looks up one room by id. With duplicate ids the first record in
// display order wins. A missing id is ErrRoomNotFound, distinct from a
// failed load.
func (s *Service) Get(ctx context.Context, id int) (models.Room, error) {
	rooms, err := s.load(ctx)
	if err != nil {
		return models.Room{}, err
	}

	for _, room := range rooms {
		if room.ID == id {
			return room, nil
		}
	}

	return models.Room{}, appErrors.ErrRoomNotFound
}

// Stats aggregates the unfiltered record set.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	rooms, err := s.load(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Aggregate(rooms), nil
}

func (s *Service) load(ctx context.Context) ([]models.Room, error) {
	if !s.configured {
		return nil, appErrors.ErrNotConfigured
	}
	return s.loader.Load(ctx)
}
