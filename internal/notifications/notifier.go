// Package notifications publishes alarm notifications to post owners.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"snsproject/internal/observability"

	"github.com/redis/go-redis/v9"
)

// AlarmType names the event an alarm reports.
type AlarmType string

const (
	AlarmNewLikeOnPost    AlarmType = "NEW_LIKE_ON_POST"
	AlarmNewCommentOnPost AlarmType = "NEW_COMMENT_ON_POST"
)

// Alarm is the JSON payload delivered on a user's alarm channel.
type Alarm struct {
	Type     AlarmType `json:"type"`
	FromUser string    `json:"from_user"`
	PostID   uint      `json:"post_id"`
	At       time.Time `json:"at"`
}

// AlarmChannel returns the Redis channel for a user's alarms.
func AlarmChannel(userID uint) string {
	return fmt.Sprintf("alarms:user:%d", userID)
}

// Notifier provides helpers to publish alarms into Redis channels
type Notifier struct {
	rdb *redis.Client
	now func() time.Time
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb, now: time.Now}
}

// PublishAlarm sends an alarm to ownerID's channel. Delivery is best-effort:
// failures are logged and counted, never returned to the caller.
func (n *Notifier) PublishAlarm(ctx context.Context, ownerID uint, alarmType AlarmType, fromUser string, postID uint) {
	if n == nil || n.rdb == nil {
		return
	}

	payload, err := json.Marshal(Alarm{
		Type:     alarmType,
		FromUser: fromUser,
		PostID:   postID,
		At:       n.now().UTC(),
	})
	if err != nil {
		observability.AlarmsPublished.WithLabelValues(string(alarmType), "error").Inc()
		observability.Logger.ErrorContext(ctx, "failed to encode alarm", "type", alarmType, "error", err)
		return
	}

	if err := n.rdb.Publish(ctx, AlarmChannel(ownerID), payload).Err(); err != nil {
		observability.AlarmsPublished.WithLabelValues(string(alarmType), "error").Inc()
		observability.Logger.WarnContext(ctx, "failed to publish alarm",
			"type", alarmType,
			"owner_id", ownerID,
			"post_id", postID,
			"error", err,
		)
		return
	}
	observability.AlarmsPublished.WithLabelValues(string(alarmType), "sent").Inc()
}
