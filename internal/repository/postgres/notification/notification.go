package notification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"ems/backend/foundation/web"
	"ems/backend/internal/entity"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/repository/postgres"
)

const typeAlert = "alert"

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Notify upserts an alert for a user. Repeating a title refreshes the message
// and flips the notification back to unread, matching the
// UNIQUE(user_id, title) constraint.
func (r Repository) Notify(ctx context.Context, userID, senderID int, title, message string) error {
	kind := typeAlert
	row := entity.Notification{
		UserID:    &userID,
		SenderID:  &senderID,
		Title:     &title,
		Message:   &message,
		Type:      &kind,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	_, err := r.NewInsert().Model(&row).
		On("CONFLICT (user_id, title) DO UPDATE").
		Set("message = EXCLUDED.message").
		Set("sender_id = EXCLUDED.sender_id").
		Set("is_read = false").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "upserting notification")
	}

	return nil
}

// GetList returns the caller's own notifications, newest first.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := fmt.Sprintf(`
		WHERE
			user_id = %d
	`, claims.UserId)
	if filter.Unread != nil && *filter.Unread {
		whereQuery += " AND is_read = false"
	}

	orderQuery := "ORDER BY created_at desc"

	var limitQuery, offsetQuery string
	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery = fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			id,
			sender_id,
			title,
			message,
			type,
			is_read,
			created_at
		FROM notifications
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting notifications"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.SenderID,
			&detail.Title,
			&detail.Message,
			&detail.Type,
			&detail.IsRead,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning notification list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(id)
		FROM notifications
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning notification count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// MarkRead flags one of the caller's notifications as read.
func (r Repository) MarkRead(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	res, err := r.NewUpdate().Table("notifications").
		Where("id = ? AND user_id = ?", id, claims.UserId).
		Set("is_read = true").
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating notification"), http.StatusInternalServerError)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}
