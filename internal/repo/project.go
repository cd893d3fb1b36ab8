package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/team-tracker/internal/model"
)

const projectColumns = `id, name, description, status, created_at, updated_at`

// ProjectRepo writes through the service pool and serves status views from the
// public pool.
type ProjectRepo struct {
	pool     *pgxpool.Pool
	readPool *pgxpool.Pool
}

func NewProjectRepo(pool, readPool *pgxpool.Pool) *ProjectRepo {
	if readPool == nil {
		readPool = pool
	}
	return &ProjectRepo{pool: pool, readPool: readPool}
}

func scanProject(row pgx.Row) (model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProjectRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
	created, err := scanProject(r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, status)
		VALUES ($1, $2, $3)
		RETURNING `+projectColumns,
		p.Name, p.Description, p.Status))
	return created, mapError(err)
}

func (r *ProjectRepo) Get(ctx context.Context, id int64) (model.Project, error) {
	p, err := scanProject(r.readPool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1
	`, id))
	return p, mapError(err)
}

// ListByStatus returns every project when status is empty.
func (r *ProjectRepo) ListByStatus(ctx context.Context, status string) ([]model.Project, error) {
	rows, err := r.readPool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE ($1::text = '' OR status = $1)
		ORDER BY updated_at DESC, id DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) UpdateStatus(ctx context.Context, id int64, status string) (model.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx, `
		UPDATE projects SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+projectColumns,
		id, status))
	return p, mapError(err)
}
