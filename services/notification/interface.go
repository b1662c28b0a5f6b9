package notification

import (
	"context"
	"fmt"

	userRepo "wanderly/database/repository/user"
	"wanderly/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

func NewDefaultNotificationService(users userRepo.UserRepository, logger *zap.Logger) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{Users: users, Logger: logger}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		s.Logger.Debug("User has no FCM token, skipping push", zap.String("userId", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send push to user %s: %w", userID, err)
	}
	return nil
}
