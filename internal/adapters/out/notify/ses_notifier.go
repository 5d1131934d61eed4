// Package notify implements order lifecycle notifications over Amazon SES.
// The dispatch operations mailbox receives a notice on every customer-facing
// transition; customers themselves are contacted by phone, so the mailbox is
// the paper trail the business works from.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"fueldispatch/internal/core/domain/model/order"
)

// SESNotifier sends lifecycle notices through the AWS SES v2 API.
type SESNotifier struct {
	client *sesv2.Client
	from   string
	to     string
	logger *slog.Logger
}

// NewSESNotifier creates a notifier for the given region and addresses.
// Credentials are loaded from the environment.
func NewSESNotifier(ctx context.Context, region, from, to string, logger *slog.Logger) (*SESNotifier, error) {
	if from == "" || to == "" {
		return nil, errors.New("notify: from and to addresses are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("notify: load aws config: %w", err)
	}

	return &SESNotifier{
		client: sesv2.NewFromConfig(cfg),
		from:   from,
		to:     to,
		logger: logger,
	}, nil
}

// NotifyOrderAccepted reports that an order joined the rider's current trip.
func (n *SESNotifier) NotifyOrderAccepted(ctx context.Context, aggregate *order.Order) error {
	subject := fmt.Sprintf("Order %s accepted", aggregate.Number())
	body := fmt.Sprintf(
		"Order %s (%d L %s) for %s at %s was accepted for the next trip.\nContact: %s",
		aggregate.Number(),
		aggregate.Quantity().Liters(),
		aggregate.FuelType().String(),
		aggregate.Customer().Name(),
		aggregate.Customer().Address(),
		aggregate.Customer().Phone(),
	)
	return n.send(ctx, aggregate, subject, body)
}

// NotifyOrderDelivered reports a confirmed delivery.
func (n *SESNotifier) NotifyOrderDelivered(ctx context.Context, aggregate *order.Order) error {
	subject := fmt.Sprintf("Order %s delivered", aggregate.Number())
	body := fmt.Sprintf(
		"Order %s for %s was delivered and confirmed by the customer.",
		aggregate.Number(),
		aggregate.Customer().Name(),
	)
	return n.send(ctx, aggregate, subject, body)
}

// NotifyOrderRescheduled reports that a customer could not be reached and the
// order was parked for a later trip.
func (n *SESNotifier) NotifyOrderRescheduled(ctx context.Context, aggregate *order.Order) error {
	subject := fmt.Sprintf("Order %s needs rescheduling", aggregate.Number())
	body := fmt.Sprintf(
		"Customer %s (%s) could not be reached for order %s. The order waits for a manual requeue.",
		aggregate.Customer().Name(),
		aggregate.Customer().Phone(),
		aggregate.Number(),
	)
	return n.send(ctx, aggregate, subject, body)
}

// NotifyDeliveryDelayed reports an in-transit order running late.
func (n *SESNotifier) NotifyDeliveryDelayed(ctx context.Context, aggregate *order.Order) error {
	subject := fmt.Sprintf("Order %s delayed", aggregate.Number())

	startedAt := "unknown"
	if at := aggregate.StartedAt(); at != nil {
		startedAt = at.UTC().Format("15:04 MST")
	}

	body := fmt.Sprintf(
		"Order %s for %s (%s) left at %s and has not been confirmed yet. The customer may need an update.",
		aggregate.Number(),
		aggregate.Customer().Name(),
		aggregate.Customer().Phone(),
		startedAt,
	)
	return n.send(ctx, aggregate, subject, body)
}

func (n *SESNotifier) send(ctx context.Context, aggregate *order.Order, subject, body string) error {
	input := newEmailInput(n.from, n.to, subject, body)

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		n.logger.Error("notification send failed", "order", aggregate.Number(), "error", err)
		return fmt.Errorf("notify: send email: %w", err)
	}

	n.logger.Info("notification sent", "order", aggregate.Number(), "subject", subject)
	return nil
}
