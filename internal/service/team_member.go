package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
)

type TeamMemberService struct {
	repo        repo.TeamMemberRepository
	logger      *zap.Logger
	concurrency int
}

func NewTeamMemberService(repo repo.TeamMemberRepository, logger *zap.Logger, concurrency int) *TeamMemberService {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &TeamMemberService{repo: repo, logger: logger, concurrency: concurrency}
}

func (s *TeamMemberService) Create(ctx context.Context, m model.TeamMember) (model.TeamMember, error) {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.PCName) == "" {
		return m, fmt.Errorf("%w: name and pc_name are required", ErrValidation)
	}
	if m.TeamID <= 0 {
		return m, fmt.Errorf("%w: team_id is required", ErrValidation)
	}
	return s.repo.Create(ctx, m)
}

func (s *TeamMemberService) ListByTeam(ctx context.Context, teamID int64) ([]model.TeamMember, error) {
	return s.repo.ListByTeam(ctx, teamID)
}

// Reorder issues one independent update per entry and waits for all of them.
// There is no rollback: entries that succeeded stay applied when others fail.
// The batch runs to completion even if ctx is cancelled mid-way.
func (s *TeamMemberService) Reorder(ctx context.Context, updates []model.DisplayOrderUpdate) model.ReorderResult {
	ctx = context.WithoutCancel(ctx)
	result := model.ReorderResult{
		Succeeded: []int64{},
		Failed:    []model.ReorderFailure{},
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.concurrency)

	for _, u := range updates {
		g.Go(func() error {
			err := s.repo.UpdateDisplayOrder(ctx, u.ID, u.DisplayOrder)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, model.ReorderFailure{ID: u.ID, Error: err.Error()})
				return nil
			}
			result.Succeeded = append(result.Succeeded, u.ID)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Succeeded, func(i, j int) bool { return result.Succeeded[i] < result.Succeeded[j] })
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].ID < result.Failed[j].ID })

	if !result.OK() {
		s.logger.Warn("team member reorder partially failed",
			zap.Int("succeeded", len(result.Succeeded)),
			zap.Int("failed", len(result.Failed)),
		)
	}
	return result
}
