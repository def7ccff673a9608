package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
	mediaSvc "github.com/lcabrel/medialib-go/internal/usecase/media"
	"github.com/lcabrel/medialib-go/internal/uuid"
)

type MediaRepository struct {
	db *sql.DB
}

// compile-time check: *MediaRepository must satisfy port.MediaRepository
var _ port.MediaRepository = (*MediaRepository)(nil)

func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

const mediaColumns = `id, external_id, owner_type, owner_id, collection_name, name, file_name, mime_type, disk, size_bytes, custom_properties, generated_conversions, responsive_images, order_column, content_hash, created_at, updated_at, deleted_at`

func (r *MediaRepository) Create(ctx context.Context, media *model.Media) error {
	log.Printf("creating database record for media %q in collection %q...", media.FileName, media.CollectionName)

	const query = `
      INSERT INTO media
        (external_id, owner_type, owner_id, collection_name, name, file_name, mime_type, disk, size_bytes, custom_properties, generated_conversions, responsive_images, order_column, content_hash)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query,
		media.ExternalID, media.OwnerType, media.OwnerID,
		media.CollectionName, media.Name, media.FileName,
		media.MimeType, media.Disk, media.SizeBytes,
		media.CustomProperties, media.GeneratedConversions, media.ResponsiveImages,
		media.OrderColumn, media.ContentHash,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	media.ID = uint64(id)

	return nil
}

func (r *MediaRepository) Update(ctx context.Context, media *model.Media) error {
	log.Printf("updating database record for media #%d...", media.ID)

	const query = `
      UPDATE media
      SET
        owner_type            = ?,
        owner_id              = ?,
        collection_name       = ?,
        name                  = ?,
        file_name             = ?,
        mime_type             = ?,
        disk                  = ?,
        size_bytes            = ?,
        custom_properties     = ?,
        generated_conversions = ?,
        responsive_images     = ?,
        order_column          = ?,
        content_hash          = ?
      WHERE id = ? AND deleted_at IS NULL
    `
	_, err := r.db.ExecContext(ctx, query,
		media.OwnerType,
		media.OwnerID,
		media.CollectionName,
		media.Name,
		media.FileName,
		media.MimeType,
		media.Disk,
		media.SizeBytes,
		media.CustomProperties,
		media.GeneratedConversions,
		media.ResponsiveImages,
		media.OrderColumn,
		media.ContentHash,
		media.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *MediaRepository) GetByID(ctx context.Context, id uint64) (*model.Media, error) {
	log.Printf("fetching media #%d from the database...", id)

	query := `
      SELECT ` + mediaColumns + `
      FROM media
      WHERE id = ? AND deleted_at IS NULL
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *MediaRepository) GetByExternalID(ctx context.Context, id uuid.UUID) (*model.Media, error) {
	log.Printf("fetching media %s from the database...", id)

	query := `
      SELECT ` + mediaColumns + `
      FROM media
      WHERE external_id = ? AND deleted_at IS NULL
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *MediaRepository) GetByContentHash(ctx context.Context, hash string) (*model.Media, error) {
	query := `
      SELECT ` + mediaColumns + `
      FROM media
      WHERE content_hash = ? AND deleted_at IS NULL
      ORDER BY id ASC
      LIMIT 1
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, hash))
}

func (r *MediaRepository) ListByOwner(ctx context.Context, ownerType string, ownerID uint64, collection string) ([]model.Media, error) {
	query := `
      SELECT ` + mediaColumns + `
      FROM media
      WHERE owner_type = ? AND owner_id = ? AND deleted_at IS NULL
    `
	args := []any{ownerType, ownerID}
	if collection != "" {
		query += ` AND collection_name = ?`
		args = append(args, collection)
	}
	query += ` ORDER BY order_column IS NULL, order_column ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanMany(rows)
}

func (r *MediaRepository) Search(ctx context.Context, term string, limit int) ([]model.Media, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
      SELECT ` + mediaColumns + `
      FROM media
      WHERE (name LIKE ? OR file_name LIKE ?) AND deleted_at IS NULL
      ORDER BY id DESC
      LIMIT ?
    `
	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanMany(rows)
}

func (r *MediaRepository) UpdateOrder(ctx context.Context, id uint64, order uint) error {
	const query = `
      UPDATE media
      SET order_column = ?
      WHERE id = ? AND deleted_at IS NULL
    `
	_, err := r.db.ExecContext(ctx, query, order, id)
	return err
}

func (r *MediaRepository) SoftDelete(ctx context.Context, id uint64) error {
	log.Printf("soft-deleting media #%d...", id)

	const query = `
      UPDATE media
      SET deleted_at = CURRENT_TIMESTAMP
      WHERE id = ? AND deleted_at IS NULL
    `
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return mediaSvc.ErrNotFound
	}

	return nil
}

func (r *MediaRepository) HardDelete(ctx context.Context, id uint64) error {
	log.Printf("hard-deleting media #%d...", id)

	const query = `DELETE FROM media WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *MediaRepository) ListIDs(ctx context.Context) ([]uint64, error) {
	const query = `SELECT id FROM media WHERE deleted_at IS NULL ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *MediaRepository) ListSoftDeletedBefore(ctx context.Context, before time.Time) ([]model.Media, error) {
	query := `
      SELECT ` + mediaColumns + `
      FROM media
      WHERE deleted_at IS NOT NULL AND deleted_at < ?
      ORDER BY id ASC
    `
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanMany(rows)
}

func (r *MediaRepository) Collections(ctx context.Context, ownerType string, ownerID uint64) ([]port.CollectionSummary, error) {
	const query = `
      SELECT collection_name, COUNT(*), COALESCE(SUM(size_bytes), 0)
      FROM media
      WHERE owner_type = ? AND owner_id = ? AND deleted_at IS NULL
      GROUP BY collection_name
      ORDER BY collection_name ASC
    `
	rows, err := r.db.QueryContext(ctx, query, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []port.CollectionSummary
	for rows.Next() {
		var s port.CollectionSummary
		if err := rows.Scan(&s.CollectionName, &s.MediaCount, &s.TotalSize); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *MediaRepository) TotalSize(ctx context.Context, ownerType string, ownerID uint64) (int64, error) {
	const query = `
      SELECT COALESCE(SUM(size_bytes), 0)
      FROM media
      WHERE owner_type = ? AND owner_id = ? AND deleted_at IS NULL
    `
	var total int64
	if err := r.db.QueryRowContext(ctx, query, ownerType, ownerID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *MediaRepository) scanOne(row *sql.Row) (*model.Media, error) {
	var media model.Media
	if err := row.Scan(
		&media.ID, &media.ExternalID, &media.OwnerType, &media.OwnerID,
		&media.CollectionName, &media.Name, &media.FileName,
		&media.MimeType, &media.Disk, &media.SizeBytes,
		&media.CustomProperties, &media.GeneratedConversions, &media.ResponsiveImages,
		&media.OrderColumn, &media.ContentHash,
		&media.CreatedAt, &media.UpdatedAt, &media.DeletedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mediaSvc.ErrNotFound
		}
		return nil, err
	}

	return &media, nil
}

func scanMany(rows *sql.Rows) ([]model.Media, error) {
	var out []model.Media
	for rows.Next() {
		var media model.Media
		if err := rows.Scan(
			&media.ID, &media.ExternalID, &media.OwnerType, &media.OwnerID,
			&media.CollectionName, &media.Name, &media.FileName,
			&media.MimeType, &media.Disk, &media.SizeBytes,
			&media.CustomProperties, &media.GeneratedConversions, &media.ResponsiveImages,
			&media.OrderColumn, &media.ContentHash,
			&media.CreatedAt, &media.UpdatedAt, &media.DeletedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, media)
	}
	return out, rows.Err()
}
