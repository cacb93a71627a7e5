package talentgraph

import (
	"context"
	"fmt"
	"net/url"

	"talentgraph-bot/internal/models"
)

func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	params := url.Values{}
	if unreadOnly {
		params.Set("unread", "true")
	}

	data, err := c.get(ctx, "/notifications", params)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	var notifications []models.Notification
	if err := c.parseResponse(data, &notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	if _, err := c.post(ctx, fmt.Sprintf("/notifications/%d/read", id), nil); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
