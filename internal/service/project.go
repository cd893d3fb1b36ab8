package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/BuzzLyutic/team-tracker/internal/cache"
	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
)

const (
	projectsCacheFamily = "projects"
	projectsCachePrefix = projectsCacheFamily + ":"
)

type ProjectService struct {
	repo  repo.ProjectRepository
	cache *cache.Cache
}

// NewProjectService accepts a nil cache.
func NewProjectService(repo repo.ProjectRepository, c *cache.Cache) *ProjectService {
	return &ProjectService{repo: repo, cache: c}
}

func (s *ProjectService) Create(ctx context.Context, p model.Project) (model.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return p, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Status == "" {
		p.Status = model.ProjectNotStarted
	}
	if err := validateStatus(p.Status); err != nil {
		return p, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return created, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (model.Project, error) {
	return s.repo.Get(ctx, id)
}

// ListByStatus is the read-only status view. An empty status lists every project.
func (s *ProjectService) ListByStatus(ctx context.Context, status string) ([]model.Project, error) {
	if status != "" {
		if err := validateStatus(status); err != nil {
			return nil, err
		}
	}

	key := fmt.Sprintf("%s%d:%s", projectsCachePrefix, s.cache.Generation(ctx, projectsCacheFamily), status)
	var projects []model.Project
	if s.cache.Load(ctx, key, &projects) {
		return projects, nil
	}

	projects, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	s.cache.Store(ctx, key, projects)
	return projects, nil
}

func (s *ProjectService) UpdateStatus(ctx context.Context, id int64, status string) (model.Project, error) {
	if err := validateStatus(status); err != nil {
		return model.Project{}, err
	}
	p, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return p, err
	}
	s.invalidate(ctx)
	return p, nil
}

func validateStatus(status string) error {
	if !slices.Contains(model.ProjectStatuses, status) {
		return fmt.Errorf("%w: unknown project status %q", ErrValidation, status)
	}
	return nil
}

// invalidate bumps the generation first so a view read before this write and
// stored after it lands under a stale key.
func (s *ProjectService) invalidate(ctx context.Context) {
	s.cache.Bump(ctx, projectsCacheFamily)
	s.cache.EvictPrefix(ctx, projectsCachePrefix)
}
