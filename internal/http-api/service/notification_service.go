package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"comichub/internal/http-api/repository"
	"comichub/internal/push"
)

const fanOutTimeout = 30 * time.Second

// notificationService implements Notifier: it pushes a "new comic" message
// to every notifiable subscriber of the creator. Each delivery runs in its
// own goroutine; per-recipient failures are logged and swallowed.
type notificationService struct {
	settings repository.SettingsRepository
	users    repository.UserRepository
	sender   push.Sender
	logger   *slog.Logger
}

func NewNotificationService(
	settings repository.SettingsRepository,
	users repository.UserRepository,
	sender push.Sender,
	logger *slog.Logger,
) Notifier {
	return &notificationService{
		settings: settings,
		users:    users,
		sender:   sender,
		logger:   logger,
	}
}

func (s *notificationService) ComicPublished(creatorID, comicID, title string) {
	// Detached from the request, so the fan-out carries its own context.
	ctx, cancel := context.WithTimeout(context.Background(), fanOutTimeout)
	defer cancel()

	recipients, err := s.settings.NotifiableSubscribers(ctx, creatorID)
	if err != nil {
		s.logger.Error("failed to load notifiable subscribers",
			"creator_id", creatorID, "error", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	creatorName := "Author"
	if creator, err := s.users.FindByID(ctx, creatorID); err == nil {
		creatorName = creator.Name
	}

	msg := push.Message{
		Title: "New comic",
		Body:  fmt.Sprintf("%s published a new comic: %q", creatorName, title),
		Data: map[string]string{
			"type":       "new_comic",
			"comic_id":   comicID,
			"creator_id": creatorID,
		},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)
	for _, recipient := range recipients {
		wg.Add(1)
		go func(rcpt repository.Recipient) {
			defer wg.Done()
			m := msg
			m.Token = rcpt.FCMToken
			if err := s.sender.Send(ctx, m); err != nil {
				s.logger.Error("push delivery failed",
					"user_id", rcpt.UserID, "comic_id", comicID, "error", err)
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(recipient)
	}
	wg.Wait()

	s.logger.Info("comic publish notifications sent",
		"comic_id", comicID,
		"delivered", len(recipients)-failures,
		"failed", failures)
}
