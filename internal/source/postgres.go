package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/piwi3910/cutprint/internal/model"
)

// Schema creates the tables the Postgres source reads. Units and parts keep
// their print order in the position column. Unit and part ids are only
// unique within their project, so every key starts with project_id.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	client_name TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS units (
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	id         TEXT NOT NULL,
	position   INT NOT NULL,
	type       TEXT NOT NULL,
	width      DOUBLE PRECISION NOT NULL,
	height     DOUBLE PRECISION NOT NULL DEFAULT 0,
	depth      DOUBLE PRECISION NOT NULL DEFAULT 0,
	PRIMARY KEY (project_id, id)
);
CREATE TABLE IF NOT EXISTS parts (
	project_id  TEXT NOT NULL,
	unit_id     TEXT NOT NULL,
	id          TEXT NOT NULL,
	position    INT NOT NULL,
	name        TEXT NOT NULL,
	width       DOUBLE PRECISION NOT NULL,
	height      DOUBLE PRECISION NOT NULL,
	qty         INT,
	quantity    INT,
	edge_code   TEXT,
	description TEXT,
	PRIMARY KEY (project_id, unit_id, id),
	FOREIGN KEY (project_id, unit_id) REFERENCES units(project_id, id) ON DELETE CASCADE
);`

const (
	selectProject = `SELECT id, name, COALESCE(client_name, ''), created_at, updated_at
FROM projects WHERE id = $1`

	selectUnits = `SELECT id, type, width, height, depth
FROM units WHERE project_id = $1 ORDER BY position`

	selectParts = `SELECT p.unit_id, p.id, p.name, p.width, p.height, p.qty, p.quantity,
	COALESCE(p.edge_code, ''), COALESCE(p.description, '')
FROM parts p JOIN units u ON u.project_id = p.project_id AND u.id = p.unit_id
WHERE p.project_id = $1 ORDER BY u.position, p.position`
)

// Postgres loads projects from the projects, units and parts tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to databaseURL and verifies the connection.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database url is required for the postgres source")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Kind() string { return model.SourcePostgres }

// Close releases the pool.
func (p *Postgres) Close() { p.pool.Close() }

// EnsureSchema creates the source tables when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Project implements Source. All three reads run in one read-only
// transaction so the tree is consistent.
func (p *Postgres) Project(ctx context.Context, id string) (model.Project, error) {
	if err := ValidateID(id); err != nil {
		return model.Project{}, err
	}

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return model.Project{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var proj model.Project
	err = tx.QueryRow(ctx, selectProject, id).Scan(&proj.ID, &proj.Name, &proj.ClientName, &proj.CreatedAt, &proj.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("query project %s: %w", id, err)
	}

	rows, err := tx.Query(ctx, selectUnits, id)
	if err != nil {
		return model.Project{}, fmt.Errorf("query units: %w", err)
	}
	proj.Units, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Unit, error) {
		u := model.Unit{Parts: []model.Part{}}
		err := row.Scan(&u.ID, &u.Type, &u.Width, &u.Height, &u.Depth)
		return u, err
	})
	if err != nil {
		return model.Project{}, fmt.Errorf("scan units: %w", err)
	}

	index := make(map[string]int, len(proj.Units))
	for i, u := range proj.Units {
		index[u.ID] = i
	}

	rows, err = tx.Query(ctx, selectParts, id)
	if err != nil {
		return model.Project{}, fmt.Errorf("query parts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var unitID string
		var part model.Part
		if err := rows.Scan(&unitID, &part.ID, &part.Name, &part.Width, &part.Height,
			&part.Qty, &part.Quantity, &part.EdgeCode, &part.Description); err != nil {
			return model.Project{}, fmt.Errorf("scan part: %w", err)
		}
		i := index[unitID]
		proj.Units[i].Parts = append(proj.Units[i].Parts, part)
	}
	if err := rows.Err(); err != nil {
		return model.Project{}, fmt.Errorf("read parts: %w", err)
	}
	return proj, nil
}

// SaveProject replaces a project tree, used to seed the database from
// project files.
func (p *Postgres) SaveProject(ctx context.Context, proj model.Project) error {
	if err := ValidateID(proj.ID); err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, proj.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO projects (id, name, client_name, created_at, updated_at) VALUES ($1, $2, $3, now(), now())`,
			proj.ID, proj.Name, proj.ClientName); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		for ui, u := range proj.Units {
			unitID := u.ID
			if unitID == "" {
				unitID = fmt.Sprintf("u%d", ui)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO units (project_id, id, position, type, width, height, depth) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				proj.ID, unitID, ui, u.Type, u.Width, u.Height, u.Depth); err != nil {
				return fmt.Errorf("insert unit %s: %w", unitID, err)
			}
			for pi, part := range u.Parts {
				partID := part.ID
				if partID == "" {
					partID = fmt.Sprintf("p%d", pi)
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO parts (project_id, unit_id, id, position, name, width, height, qty, quantity, edge_code, description)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
					proj.ID, unitID, partID, pi, part.Name, part.Width, part.Height, part.Qty, part.Quantity, part.EdgeCode, part.Description); err != nil {
					return fmt.Errorf("insert part %s: %w", partID, err)
				}
			}
		}
		return nil
	})
}
