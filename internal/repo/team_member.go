package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/team-tracker/internal/model"
)

type TeamMemberRepo struct {
	pool *pgxpool.Pool
}

func NewTeamMemberRepo(pool *pgxpool.Pool) *TeamMemberRepo {
	return &TeamMemberRepo{pool: pool}
}

// Create places the new member after the current last member of the team.
func (r *TeamMemberRepo) Create(ctx context.Context, m model.TeamMember) (model.TeamMember, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO team_members (name, team_id, pc_name, email, display_order)
		SELECT $1, $2, $3, $4, COALESCE(MAX(display_order), 0) + 1
		FROM team_members WHERE team_id = $2
		RETURNING id, name, team_id, pc_name, email, display_order
	`, m.Name, m.TeamID, m.PCName, m.Email).Scan(
		&m.ID, &m.Name, &m.TeamID, &m.PCName, &m.Email, &m.DisplayOrder,
	)
	return m, mapError(err)
}

func (r *TeamMemberRepo) ListByTeam(ctx context.Context, teamID int64) ([]model.TeamMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, team_id, pc_name, email, display_order
		FROM team_members
		WHERE team_id = $1
		ORDER BY display_order, id
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []model.TeamMember{}
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.TeamID, &m.PCName, &m.Email, &m.DisplayOrder); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *TeamMemberRepo) UpdateDisplayOrder(ctx context.Context, id int64, order int) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE team_members SET display_order = $2 WHERE id = $1
	`, id, order)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
