package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"chirp/internal/models"
	"chirp/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	timelineChannelPrefix = "timeline:user:"
	broadcastChannel      = "timeline:broadcast"

	// EventNewMessage is emitted to followers when someone they follow posts.
	EventNewMessage = "new_message"
	// EventMessageDeleted is emitted when an author removes a message.
	EventMessageDeleted = "message_deleted"
)

// TimelineEvent is the JSON envelope pushed over the websocket.
type TimelineEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Notifier publishes timeline events into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier using the provided Redis client. A nil
// client turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// UserChannel derives the Redis channel name for a user's timeline.
func UserChannel(userID uint) string {
	return timelineChannelPrefix + strconv.FormatUint(uint64(userID), 10)
}

// PublishUser sends a payload to one user's timeline channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast sends a payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// PublishNewMessage fans a new-message event out to each follower's timeline
// channel. Delivery is best-effort; a failed publish is logged, not returned.
func (n *Notifier) PublishNewMessage(ctx context.Context, followerIDs []uint, message *models.Message) error {
	if n.rdb == nil || len(followerIDs) == 0 {
		return nil
	}

	payload, err := json.Marshal(TimelineEvent{Type: EventNewMessage, Payload: message})
	if err != nil {
		return fmt.Errorf("marshal timeline event: %w", err)
	}

	for _, followerID := range followerIDs {
		if err := n.rdb.Publish(ctx, UserChannel(followerID), string(payload)).Err(); err != nil {
			log.Printf("timeline publish to user %d failed: %v", followerID, err)
			continue
		}
		observability.WebSocketEventsTotal.WithLabelValues(EventNewMessage).Inc()
	}
	return nil
}

// PublishMessageDeleted fans a deletion event out to followers.
func (n *Notifier) PublishMessageDeleted(ctx context.Context, followerIDs []uint, messageID uint) error {
	if n.rdb == nil || len(followerIDs) == 0 {
		return nil
	}

	payload, err := json.Marshal(TimelineEvent{
		Type:    EventMessageDeleted,
		Payload: map[string]uint{"message_id": messageID},
	})
	if err != nil {
		return fmt.Errorf("marshal timeline event: %w", err)
	}

	for _, followerID := range followerIDs {
		if err := n.rdb.Publish(ctx, UserChannel(followerID), string(payload)).Err(); err != nil {
			log.Printf("timeline publish to user %d failed: %v", followerID, err)
			continue
		}
		observability.WebSocketEventsTotal.WithLabelValues(EventMessageDeleted).Inc()
	}
	return nil
}

// StartTimelineSubscriber subscribes to the timeline channels and calls
// onMessage for each incoming message.
func (n *Notifier) StartTimelineSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, timelineChannelPrefix+"*", broadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in TimelineSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
