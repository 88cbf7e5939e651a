package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/models"
)

// jobQueueSize bounds the dispatch queue. Returns are rare enough that a
// full queue means something is wrong downstream; jobs are then dropped
// with a warning rather than blocking the return path.
const jobQueueSize = 64

// pushTTLSeconds is how long the push service may hold an undelivered
// message. Availability news is stale within the hour.
const pushTTLSeconds = 3600

// availabilityPayload is the JSON body delivered to subscribed browsers.
type availabilityPayload struct {
	Title      string      `json:"title"`
	Body       string      `json:"body"`
	Zone       models.Zone `json:"zone"`
	UmbrellaID int         `json:"umbrellaId"`
}

type job struct {
	zone       models.Zone
	umbrellaID int
}

// Sender delivers one payload to one subscription and reports the push
// service status code. Split out so the pool can be tested without a
// live push service.
type Sender interface {
	Send(ctx context.Context, sub *models.PushSubscription, payload []byte) (int, error)
}

// webpushSender implements Sender over the Web Push protocol with VAPID
// authentication.
type webpushSender struct {
	options *webpush.Options
}

// NewWebpushSender creates a Sender using the given VAPID key pair.
func NewWebpushSender(subject, publicKey, privateKey string) Sender {
	return &webpushSender{
		options: &webpush.Options{
			Subscriber:      subject,
			VAPIDPublicKey:  publicKey,
			VAPIDPrivateKey: privateKey,
			TTL:             pushTTLSeconds,
		},
	}
}

func (s *webpushSender) Send(ctx context.Context, sub *models.PushSubscription, payload []byte) (int, error) {
	opts := *s.options
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}, &opts)
	if err != nil {
		return 0, fmt.Errorf("failed to send push notification: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// WorkerPool fans availability events out to the browsers subscribed to
// the affected zone. It implements core.AvailabilityNotifier.
type WorkerPool struct {
	subs    db.PushSubscriptionRepository
	sender  Sender
	workers int
	jobs    chan job
	logger  *zap.Logger
}

// NewWorkerPool creates a stopped pool; call Start to launch the workers.
func NewWorkerPool(subs db.PushSubscriptionRepository, sender Sender, workers int, logger *zap.Logger) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		subs:    subs,
		sender:  sender,
		workers: workers,
		jobs:    make(chan job, jobQueueSize),
		logger:  logger,
	}
}

// Start launches the workers. They drain the queue until ctx is
// cancelled.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.run(ctx)
	}
	p.logger.Info("Notification workers started", zap.Int("workers", p.workers))
}

func (p *WorkerPool) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			p.sendForZone(ctx, j.zone, j.umbrellaID)
		}
	}
}

// UmbrellaAvailable queues a notification without blocking the caller.
func (p *WorkerPool) UmbrellaAvailable(zone models.Zone, umbrellaID int) {
	select {
	case p.jobs <- job{zone: zone, umbrellaID: umbrellaID}:
	default:
		p.logger.Warn("Notification queue full, dropping event",
			zap.String("zone", string(zone)), zap.Int("umbrellaID", umbrellaID))
	}
}

// sendForZone notifies every subscription registered for the zone. A 410
// Gone from the push service means the browser unsubscribed, so the
// record is deleted.
func (p *WorkerPool) sendForZone(ctx context.Context, zone models.Zone, umbrellaID int) {
	subs, err := p.subs.ListByZone(ctx, zone)
	if err != nil {
		p.logger.Error("Failed to list push subscriptions",
			zap.String("zone", string(zone)), zap.Error(err))
		return
	}
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(availabilityPayload{
		Title:      "มีร่มว่างแล้ว",
		Body:       fmt.Sprintf("ร่มหมายเลข %d ว่างแล้วที่%s", umbrellaID, zone),
		Zone:       zone,
		UmbrellaID: umbrellaID,
	})
	if err != nil {
		p.logger.Error("Failed to encode push payload", zap.Error(err))
		return
	}

	for _, sub := range subs {
		status, err := p.sender.Send(ctx, sub, payload)
		if err != nil {
			p.logger.Warn("Push delivery failed",
				zap.String("subscription", sub.ID), zap.Error(err))
			continue
		}
		if status == http.StatusGone || status == http.StatusNotFound {
			if err := p.subs.Delete(ctx, sub.ID); err != nil {
				p.logger.Warn("Failed to delete expired subscription",
					zap.String("subscription", sub.ID), zap.Error(err))
			} else {
				p.logger.Info("Removed expired push subscription",
					zap.String("subscription", sub.ID))
			}
		}
	}
}
