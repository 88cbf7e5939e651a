package db

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	rtdb "firebase.google.com/go/v4/db"

	"umbrella-backend-go/internal/models"
)

const pushSubscriptionsPath = "pushSubscriptions"

// rtdbPushSubscriptionRepository implements PushSubscriptionRepository
// over the tree at pushSubscriptions/{key}. Endpoints are URLs and cannot
// be used as keys directly, so the key is a URL-safe digest of the
// endpoint; saving the same endpoint twice is a natural upsert.
type rtdbPushSubscriptionRepository struct {
	client *rtdb.Client
}

// NewRTDBPushSubscriptionRepository creates a new subscription repository.
func NewRTDBPushSubscriptionRepository(client *rtdb.Client) PushSubscriptionRepository {
	if client == nil {
		panic("Realtime Database client is not initialized for PushSubscriptionRepository")
	}
	return &rtdbPushSubscriptionRepository{client: client}
}

func subscriptionKey(endpoint string) string {
	sum := sha256.Sum256([]byte(endpoint))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Save upserts a subscription keyed by its endpoint digest.
func (r *rtdbPushSubscriptionRepository) Save(ctx context.Context, sub *models.PushSubscription) error {
	if sub == nil || sub.Endpoint == "" {
		return errors.New("subscription and its endpoint are required for Save")
	}
	entry := *sub
	entry.ID = ""
	key := subscriptionKey(sub.Endpoint)
	if err := r.client.NewRef(pushSubscriptionsPath).Child(key).Set(ctx, &entry); err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}
	return nil
}

// ListByZone retrieves the subscriptions registered for one zone.
func (r *rtdbPushSubscriptionRepository) ListByZone(ctx context.Context, zone models.Zone) ([]*models.PushSubscription, error) {
	nodes, err := r.client.NewRef(pushSubscriptionsPath).
		OrderByChild("zone").
		EqualTo(string(zone)).
		GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list push subscriptions for zone %s: %w", zone, err)
	}

	subs := make([]*models.PushSubscription, 0, len(nodes))
	for _, node := range nodes {
		var s models.PushSubscription
		if err := node.Unmarshal(&s); err != nil {
			return nil, fmt.Errorf("failed to decode push subscription %s: %w", node.Key(), err)
		}
		s.ID = node.Key()
		subs = append(subs, &s)
	}
	return subs, nil
}

// Delete removes a subscription by its database key.
func (r *rtdbPushSubscriptionRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id cannot be empty for Delete")
	}
	if err := r.client.NewRef(pushSubscriptionsPath).Child(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete push subscription %s: %w", id, err)
	}
	return nil
}

// DeleteByEndpoint removes a subscription given the endpoint the client
// registered with.
func (r *rtdbPushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return errors.New("endpoint cannot be empty for DeleteByEndpoint")
	}
	return r.Delete(ctx, subscriptionKey(endpoint))
}
