package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
)

// ParticipantNotifier сообщает пользователю о записи в соревнование
type ParticipantNotifier interface {
	NotifyAddedToCompetition(ctx context.Context, user entity.User, competition entity.Competition) error
}

// NoopNotifier используется, когда отправка писем выключена
type NoopNotifier struct{}

func (n *NoopNotifier) NotifyAddedToCompetition(ctx context.Context, user entity.User, competition entity.Competition) error {
	log.Printf("[Notifier] noop: user=%d added to competition=%d", user.ID, competition.ID)
	return nil
}

// emailSender: часть resend.EmailsSvc, которую использует ResendNotifier
type emailSender interface {
	SendWithOptions(ctx context.Context, params *resend.SendEmailRequest, options *resend.SendEmailOptions) (*resend.SendEmailResponse, error)
}

// ResendNotifier отправляет письма через Resend REST API
type ResendNotifier struct {
	from   string
	emails emailSender
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewResendNotifier создает notifier с клиентом Resend
func NewResendNotifier(apiKey, from string) (*ResendNotifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendNotifier{
		from:   from,
		emails: resend.NewClient(apiKey).Emails,
		sleep:  sleepContext,
	}, nil
}

func (n *ResendNotifier) NotifyAddedToCompetition(ctx context.Context, user entity.User, competition entity.Competition) error {
	if user.Email == "" {
		return fmt.Errorf("user %d has no email", user.ID)
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{user.Email},
		Subject: fmt.Sprintf("You were added to %q", competition.Title),
		Text: fmt.Sprintf("Hi %s, you are now a participant of %q. Sign in to score the other participants.",
			user.Username, competition.Title),
		Html: fmt.Sprintf("<p>Hi %s,</p><p>you are now a participant of <strong>%s</strong>.</p><p>Sign in to score the other participants.</p>",
			html.EscapeString(user.Username), html.EscapeString(competition.Title)),
	}

	// Повторное добавление невозможно, поэтому пара (соревнование, пользователь) годится как ключ
	options := &resend.SendEmailOptions{
		IdempotencyKey: fmt.Sprintf("competition-%d-user-%d", competition.ID, user.ID),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := n.emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		wait, ok := resendRetryDelay(err, attempt)
		if !ok {
			return fmt.Errorf("resend send failed: %w", err)
		}
		// Ожидание не должно пережить дедлайн запроса
		if deadline, hasDeadline := ctx.Deadline(); hasDeadline && time.Until(deadline) < wait {
			return fmt.Errorf("resend retry skipped, deadline too close: %w", err)
		}
		if err := n.sleep(ctx, wait); err != nil {
			return err
		}
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
