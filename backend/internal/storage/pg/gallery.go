package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/threadlens/threadlens/shared/domain"
)

func int64Array(ids []int64) pq.Int64Array {
	return pq.Int64Array(ids)
}

// visiblePostConds narrows posts to those the caller may see inside the topic:
// not deleted, not hidden, an eligible type (whispers only for whisper-capable
// callers), and not authored by someone the caller ignores.
func visiblePostConds(topicId domain.TopicId, caller *domain.Caller) CondSet {
	allowedTypes := []int64{int64(domain.PostTypeRegular)}
	if caller.CanSeeWhispers() {
		allowedTypes = append(allowedTypes, int64(domain.PostTypeWhisper))
	}

	conds := CondSet{
		NewCond("p.topic_id = ?", topicId),
		NewCond("p.deleted_at IS NULL"),
		NewCond("p.hidden = false"),
		NewCond("p.post_type = ANY(?)", int64Array(allowedTypes)),
	}
	if caller != nil {
		conds = append(conds, NewCond(
			"p.user_id NOT IN (SELECT ignored_user_id FROM ignored_users WHERE user_id = ?)",
			caller.Id,
		))
	}
	return conds
}

// criteriaConds narrows the visible posts further by the normalized filters.
func criteriaConds(criteria domain.GalleryCriteria) CondSet {
	var conds CondSet
	if criteria.AuthorId != nil {
		conds = append(conds, NewCond("p.user_id = ?", *criteria.AuthorId))
	}
	if criteria.MinPosition > 0 {
		conds = append(conds, NewCond("p.post_number >= ?", criteria.MinPosition))
	}
	if criteria.From != nil {
		conds = append(conds, NewCond("p.created_at >= ?", *criteria.From))
	}
	if criteria.Before != nil {
		conds = append(conds, NewCond("p.created_at < ?", *criteria.Before))
	}
	return conds
}

// uploadConds restricts candidate references to real gallery material: the
// reference belongs to a post, both dimensions are known and at least minSize,
// and no reference anywhere turns the upload into a system asset (avatar,
// emoji, badge art...). The exclusion is a property of the upload, not of the
// reference at hand, hence the existence check across all of upload_references.
func uploadConds(minSize int) CondSet {
	return CondSet{
		NewCond("ur.target_type = 'Post'"),
		NewCond("u.width IS NOT NULL"),
		NewCond("u.height IS NOT NULL"),
		NewCond("u.width >= ?", minSize),
		NewCond("u.height >= ?", minSize),
		NewCond(`NOT EXISTS (
            SELECT 1 FROM upload_references sys
            WHERE sys.upload_id = ur.upload_id
              AND sys.target_type = ANY(?)
        )`, pq.Array(domain.SystemAssetKinds)),
	}
}

const galleryFromClause = `
        FROM upload_references ur
        INNER JOIN posts p ON p.id = ur.target_id
        INNER JOIN uploads u ON u.id = ur.upload_id
`

// GalleryRefs returns one page of deduplicated gallery references plus the
// total deduplicated count. Both statements run inside one REPEATABLE READ
// read-only transaction, so count and page come from the same MVCC snapshot
// and the pagination math cannot be skewed by concurrent writes.
func (s *Storage) GalleryRefs(ctx context.Context, topicId domain.TopicId, caller *domain.Caller, criteria domain.GalleryCriteria, minImageSize int) ([]domain.GalleryRef, int, error) {
	conds := visiblePostConds(topicId, caller)
	conds = append(conds, criteriaConds(criteria)...)
	conds = append(conds, uploadConds(minImageSize)...)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin gallery transaction: %w", err)
	}
	defer tx.Rollback()

	where, args := conds.Where(1)

	var total int
	countQuery := "SELECT COUNT(DISTINCT ur.upload_id)" + galleryFromClause + where
	if err := tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count gallery uploads: %w", err)
	}

	// ROW_NUMBER() keeps the first occurrence of each upload in thread order,
	// ties broken by reference id (unique, so the order is deterministic).
	limitArg := conds.ArgCount() + 1
	offsetArg := conds.ArgCount() + 2
	pageQuery := fmt.Sprintf(`
        SELECT ref_id, upload_id, post_id, post_number, author_id
        FROM (
            SELECT
                ur.id AS ref_id,
                ur.upload_id,
                p.id AS post_id,
                p.post_number,
                p.user_id AS author_id,
                ROW_NUMBER() OVER (PARTITION BY ur.upload_id ORDER BY p.post_number, ur.id) AS row_num
            %s
            %s
        ) ranked
        WHERE row_num = 1
        ORDER BY post_number, ref_id
        LIMIT $%d OFFSET $%d
    `, galleryFromClause, where, limitArg, offsetArg)

	pageArgs := append(args, domain.GalleryPageSize, criteria.Page*domain.GalleryPageSize)
	rows, err := tx.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch gallery page: %w", err)
	}
	defer rows.Close()

	var refs []domain.GalleryRef
	for rows.Next() {
		var ref domain.GalleryRef
		if err := rows.Scan(&ref.RefId, &ref.UploadId, &ref.PostId, &ref.PostNumber, &ref.AuthorId); err != nil {
			return nil, 0, fmt.Errorf("failed to scan gallery ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit gallery transaction: %w", err)
	}
	return refs, total, nil
}
