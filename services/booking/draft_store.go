package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"wanderly/models"
	"wanderly/utils"

	"github.com/go-redis/redis/v8"
)

// RedisDraftStore keeps booking drafts as JSON blobs in Redis with a
// sliding TTL.
type RedisDraftStore struct {
	Client *redis.Client
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{Client: client}
}

func draftKey(draftID string) string {
	return utils.DraftCachePrefix + draftID
}

// Save writes the draft and refreshes its TTL.
func (s *RedisDraftStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	if err := s.Client.Set(ctx, draftKey(draft.DraftID), data, utils.DraftTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache booking draft: %w", err)
	}
	return nil
}

// Get fetches a draft; an expired or unknown draft yields NotFound.
func (s *RedisDraftStore) Get(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	data, err := s.Client.Get(ctx, draftKey(draftID)).Result()
	if err == redis.Nil {
		return nil, NewLifecycleError(CodeNotFound, "booking draft not found or expired")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking draft: %w", err)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	return &draft, nil
}

// Delete removes a draft after checkout or explicit abandonment.
func (s *RedisDraftStore) Delete(ctx context.Context, draftID string) error {
	if err := s.Client.Del(ctx, draftKey(draftID)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking draft: %w", err)
	}
	return nil
}
