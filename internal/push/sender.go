// Package push delivers mobile push notifications through Firebase Cloud
// Messaging. The Sender interface keeps the delivery provider swappable and
// mockable in tests.
package push

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Message is one push notification addressed to a single device token.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type fcmSender struct {
	client *messaging.Client
}

// NewFCMSender initializes the Firebase app and returns a Sender backed by
// its messaging client. credentialsFile may be empty, in which case
// application-default credentials are used.
func NewFCMSender(ctx context.Context, credentialsFile string) (Sender, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	return &fcmSender{client: client}, nil
}

func (s *fcmSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data:  msg.Data,
		Token: msg.Token,
	})
	return err
}
