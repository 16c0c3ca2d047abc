package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/dbx"
	"github.com/dmitrijs2005/letshang/internal/models"
)

// SQLRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Insert(ctx context.Context, e *models.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	query := dbx.Rebind(r.dialect, `INSERT INTO events (id, data, created_at) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, e.ID, string(data), e.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	query := dbx.Rebind(r.dialect, `SELECT data FROM events WHERE id = ?`)
	var data string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return decode(id, data)
}

// Replace rewrites the data column only; created_at is set once on insert.
func (r *SQLRepository) Replace(ctx context.Context, e *models.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	query := dbx.Rebind(r.dialect, `UPDATE events SET data = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, string(data), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query := dbx.Rebind(r.dialect, `DELETE FROM events WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM events`)
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
	}
	defer rows.Close()

	result := []models.Event{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		e, err := decode(id, data)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func decode(id, data string) (*models.Event, error) {
	e := &models.Event{}
	if err := json.Unmarshal([]byte(data), e); err != nil {
		return nil, fmt.Errorf("%w: undecodable event %s: %v", common.ErrStorageFault, id, err)
	}
	e.ID = id
	return e, nil
}
