// Package services holds the PlanIT business operations: authentication,
// accounts and the per-user planning resources.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/mappers"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/ownership"
	"github.com/dmitrijs2005/planit/internal/server/repositories/generic"
)

// Validatable is implemented by every resource DTO.
type Validatable interface {
	Validate() error
}

// OwnedService implements create/list/get/update/delete for one kind of
// per-user resource. M is the entity, D its DTO and PM is *M.
//
// Reads and writes of a single resource go through an ownership.Guard, so
// a caller can only see and change what it created.
type OwnedService[M any, D Validatable, PM models.OwnedPtr[M]] struct {
	kind   ownership.Kind
	repo   generic.Repository[M]
	mapper mappers.Mapper[M, D]
	guard  *ownership.Guard[M]
	log    logging.Logger
}

func NewOwnedService[M any, D Validatable, PM models.OwnedPtr[M]](kind ownership.Kind, repo generic.Repository[M], mapper mappers.Mapper[M, D], log logging.Logger) *OwnedService[M, D, PM] {
	log = log.With("component", kind.Plural)
	owner := func(m *M) int64 { return PM(m).Owner() }
	return &OwnedService[M, D, PM]{
		kind:   kind,
		repo:   repo,
		mapper: mapper,
		guard:  ownership.NewGuard[M](kind, repo, owner, log),
		log:    log,
	}
}

func (s *OwnedService[M, D, PM]) Kind() ownership.Kind {
	return s.kind
}

// Create stores a new resource owned by callerID. Any id or owner in dto is
// ignored.
func (s *OwnedService[M, D, PM]) Create(ctx context.Context, callerID int64, dto D) (*D, error) {
	s.log.Info(ctx, fmt.Sprintf("Starting to create a new %s.", s.kind.Name), "caller_id", callerID)

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m := s.mapper.MapToModel(dto)
	own := PM(m).Own()
	own.ID = 0
	own.UserID = callerID

	saved, err := s.repo.Add(ctx, m)
	if err != nil {
		s.log.Error(ctx, fmt.Sprintf("Failed to create %s.", s.kind.Name), "caller_id", callerID, "error", err)
		return nil, fmt.Errorf("create %s: %w", s.kind.Name, err)
	}

	id := PM(saved).Own().ID
	s.log.Info(ctx, fmt.Sprintf("%s with ID %d created successfully.", s.kind.Name, id), "caller_id", callerID, "id", id)

	out := s.mapper.MapToDTO(saved)
	return &out, nil
}

// GetAll lists the caller's own resources.
func (s *OwnedService[M, D, PM]) GetAll(ctx context.Context, callerID int64, page, pageSize int) ([]D, error) {
	s.log.Debug(ctx, fmt.Sprintf("Retrieving all %s for user %d.", s.kind.Plural, callerID), "caller_id", callerID)

	items, err := s.repo.GetAllByOwner(ctx, callerID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind.Plural, err)
	}

	out := make([]D, 0, len(items))
	for _, m := range items {
		out = append(out, s.mapper.MapToDTO(m))
	}
	return out, nil
}

func (s *OwnedService[M, D, PM]) GetByID(ctx context.Context, callerID, id int64) (*D, error) {
	m, err := s.guard.Retrieve(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	out := s.mapper.MapToDTO(m)
	return &out, nil
}

// Update replaces the resource's fields. The stored id and owner are kept
// whatever dto says.
func (s *OwnedService[M, D, PM]) Update(ctx context.Context, callerID, id int64, dto D) (*D, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.guard.Update(ctx, callerID, id, func(ctx context.Context, cur *M) (*M, error) {
		next := s.mapper.MapToModel(dto)
		own := PM(next).Own()
		own.ID = id
		own.UserID = PM(cur).Owner()
		own.CreatedAt = PM(cur).Own().CreatedAt
		return s.repo.Update(ctx, id, next)
	})
	if err != nil {
		return nil, err
	}

	out := s.mapper.MapToDTO(m)
	return &out, nil
}

func (s *OwnedService[M, D, PM]) Delete(ctx context.Context, callerID, id int64) (*D, error) {
	m, err := s.guard.Delete(ctx, callerID, id, func(ctx context.Context, _ *M) (*M, error) {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	out := s.mapper.MapToDTO(m)
	return &out, nil
}
