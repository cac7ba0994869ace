package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/threadlens/threadlens/shared/domain"
	internal_errors "github.com/threadlens/threadlens/shared/errors"
)

func (s *Storage) GetTopic(ctx context.Context, id domain.TopicId) (domain.Topic, error) {
	var topic domain.Topic
	err := s.db.QueryRowContext(ctx, `
        SELECT id, title, slug, category_id, posts_count
        FROM topics
        WHERE id = $1
    `, id).Scan(&topic.Id, &topic.Title, &topic.Slug, &topic.CategoryId, &topic.PostsCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Topic{}, internal_errors.NotFound()
		}
		return domain.Topic{}, fmt.Errorf("failed to fetch topic: %w", err)
	}
	return topic, nil
}

// UserIdByUsername resolves a username filter. The second return is false when
// no such user exists; the caller treats that as "filter absent", not an error.
func (s *Storage) UserIdByUsername(ctx context.Context, username domain.Username) (domain.UserId, bool, error) {
	var id domain.UserId
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username = $1", username,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve username: %w", err)
	}
	return id, true, nil
}

// UsersByIds batch-loads post authors for one gallery page.
func (s *Storage) UsersByIds(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.User, error) {
	users := make(map[domain.UserId]domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username FROM users WHERE id = ANY($1)", int64Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Id, &u.Username); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[u.Id] = u
	}
	return users, rows.Err()
}
