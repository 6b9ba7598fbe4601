// Package service implements the application's use cases on top of the repositories.
package service

import (
	"context"

	"snsproject/internal/models"
	"snsproject/internal/notifications"
	"snsproject/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// AlarmPublisher delivers best-effort alarms to post owners.
type AlarmPublisher interface {
	PublishAlarm(ctx context.Context, ownerID uint, alarmType notifications.AlarmType, fromUser string, postID uint)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// startOp opens a span for a service operation. The returned func ends it
// and counts the outcome under the error code of err.
func startOp(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := observability.StartSpan(ctx, operation, attrs...)
	return ctx, func(err error) {
		result := "ok"
		if err != nil {
			result = models.ErrorCode(err)
		}
		observability.EndSpan(span, operation, result, err)
	}
}
