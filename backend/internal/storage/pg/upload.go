package pg

import (
	"context"
	"fmt"

	"github.com/threadlens/threadlens/shared/domain"
)

// UploadsByIds batch-loads the uploads referenced by one gallery page.
func (s *Storage) UploadsByIds(ctx context.Context, ids []domain.UploadId) (map[domain.UploadId]domain.Upload, error) {
	uploads := make(map[domain.UploadId]domain.Upload, len(ids))
	if len(ids) == 0 {
		return uploads, nil
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, user_id, width, height, thumbnail_width, thumbnail_height,
               extension, filesize, url, original_filename, secure
        FROM uploads
        WHERE id = ANY($1)
    `, int64Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uploads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.Upload
		if err := rows.Scan(
			&u.Id, &u.UserId, &u.Width, &u.Height, &u.ThumbnailWidth, &u.ThumbnailHeight,
			&u.Extension, &u.Filesize, &u.Url, &u.OriginalFilename, &u.Secure,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads[u.Id] = u
	}
	return uploads, rows.Err()
}

// OptimizedImagesByUploadIds batch-loads existing derived thumbnails.
func (s *Storage) OptimizedImagesByUploadIds(ctx context.Context, ids []domain.UploadId) (map[domain.UploadId][]domain.OptimizedImage, error) {
	images := make(map[domain.UploadId][]domain.OptimizedImage, len(ids))
	if len(ids) == 0 {
		return images, nil
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, upload_id, width, height, extension, url
        FROM optimized_images
        WHERE upload_id = ANY($1)
    `, int64Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch optimized images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oi domain.OptimizedImage
		if err := rows.Scan(&oi.Id, &oi.UploadId, &oi.Width, &oi.Height, &oi.Extension, &oi.Url); err != nil {
			return nil, fmt.Errorf("failed to scan optimized image: %w", err)
		}
		images[oi.UploadId] = append(images[oi.UploadId], oi)
	}
	return images, rows.Err()
}

// FindOrCreateOptimizedImage records a derived thumbnail. The unique key on
// (upload_id, width, height, extension) plus ON CONFLICT DO NOTHING makes
// concurrent calls for the same target land on a single row, so creation is
// idempotent no matter how many requests race on a cold thumbnail.
func (s *Storage) FindOrCreateOptimizedImage(ctx context.Context, oi domain.OptimizedImage) (domain.OptimizedImage, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO optimized_images (upload_id, width, height, extension, url)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (upload_id, width, height, extension) DO NOTHING
    `, oi.UploadId, oi.Width, oi.Height, oi.Extension, oi.Url)
	if err != nil {
		return domain.OptimizedImage{}, fmt.Errorf("failed to insert optimized image: %w", err)
	}

	var out domain.OptimizedImage
	err = s.db.QueryRowContext(ctx, `
        SELECT id, upload_id, width, height, extension, url
        FROM optimized_images
        WHERE upload_id = $1 AND width = $2 AND height = $3 AND extension = $4
    `, oi.UploadId, oi.Width, oi.Height, oi.Extension).Scan(
		&out.Id, &out.UploadId, &out.Width, &out.Height, &out.Extension, &out.Url,
	)
	if err != nil {
		return domain.OptimizedImage{}, fmt.Errorf("failed to reselect optimized image: %w", err)
	}
	return out, nil
}
