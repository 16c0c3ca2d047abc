package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/dbx"
	"github.com/dmitrijs2005/letshang/internal/models"
)

var tables = map[models.Keyspace]string{
	models.KeyspaceFlyer:      "flyer_images",
	models.KeyspaceBackground: "background_images",
}

// SQLRepository implements Repository over one keyspace table.
type SQLRepository struct {
	db       dbx.DBTX
	dialect  dbx.Dialect
	keyspace models.Keyspace
	table    string
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect, keyspace models.Keyspace) (*SQLRepository, error) {
	table, ok := tables[keyspace]
	if !ok {
		return nil, fmt.Errorf("unknown keyspace %q", keyspace)
	}
	return &SQLRepository{db: db, dialect: dialect, keyspace: keyspace, table: table}, nil
}

func (r *SQLRepository) Keyspace() models.Keyspace {
	return r.keyspace
}

func (r *SQLRepository) q(query string) string {
	return dbx.Rebind(r.dialect, fmt.Sprintf(query, r.table))
}

func (r *SQLRepository) Insert(ctx context.Context, rec *models.ImageRecord) error {
	ensureChecksum(rec)
	query := `INSERT INTO %s (id, payload, filename, checksum, uploaded_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.q(query),
		rec.ID, rec.Payload, rec.Filename, rec.Checksum, rec.UploadedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert image into %s: %w", r.table, err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.ImageRecord, error) {
	query := `SELECT id, payload, filename, checksum, uploaded_at FROM %s WHERE id = ?`
	rec := &models.ImageRecord{}
	var uploadedAt string
	err := r.db.QueryRowContext(ctx, r.q(query), id).
		Scan(&rec.ID, &rec.Payload, &rec.Filename, &rec.Checksum, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image from %s: %w", r.table, err)
	}

	rec.UploadedAt, err = time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: bad uploaded_at for image %s: %v", common.ErrStorageFault, id, err)
	}
	if err := verify(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *SQLRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM %s WHERE id = ?`), id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check image in %s: %w", r.table, err)
	}
	return n > 0, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.q(`DELETE FROM %s WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete image from %s: %w", r.table, err)
	}
	return nil
}
