package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/viewly/viewly/internal/domain/model"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func cachedTestVideo() *model.Video {
	return &model.Video{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Title:       "Test Video",
		Description: "A description",
		Category:    "education",
		Tags:        []string{"go", "backend"},
		Media:       model.AssetRef{ID: "videos/v", URL: "http://blobs.local/videos/v"},
		Thumbnail:   model.AssetRef{ID: "thumbnails/t", URL: "http://blobs.local/thumbnails/t"},
		CreatedAt:   time.Now().Truncate(time.Microsecond),
		UpdatedAt:   time.Now().Truncate(time.Microsecond),
	}
}

func TestRedisVideoCache_Get_CacheHit(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisVideoCache(client)
	ctx := context.Background()

	video := cachedTestVideo()

	// Set the video in cache
	err := cache.Set(ctx, video, 5*time.Minute)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Get the video from cache
	got, err := cache.Get(ctx, video.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got == nil {
		t.Fatal("expected video, got nil")
	}

	// Verify fields
	if got.ID != video.ID {
		t.Errorf("ID = %v, want %v", got.ID, video.ID)
	}
	if got.OwnerID != video.OwnerID {
		t.Errorf("OwnerID = %v, want %v", got.OwnerID, video.OwnerID)
	}
	if got.Title != video.Title {
		t.Errorf("Title = %v, want %v", got.Title, video.Title)
	}
	if got.Category != video.Category {
		t.Errorf("Category = %v, want %v", got.Category, video.Category)
	}
	if got.Media != video.Media {
		t.Errorf("Media = %v, want %v", got.Media, video.Media)
	}
	if got.Thumbnail != video.Thumbnail {
		t.Errorf("Thumbnail = %v, want %v", got.Thumbnail, video.Thumbnail)
	}
	if len(got.Tags) != len(video.Tags) {
		t.Fatalf("Tags = %v, want %v", got.Tags, video.Tags)
	}
	for i := range got.Tags {
		if got.Tags[i] != video.Tags[i] {
			t.Errorf("Tags[%d] = %v, want %v", i, got.Tags[i], video.Tags[i])
		}
	}
}

func TestRedisVideoCache_Get_CacheMiss(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisVideoCache(client)
	ctx := context.Background()

	// Try to get a non-existent video
	got, err := cache.Get(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got != nil {
		t.Errorf("expected nil for cache miss, got %v", got)
	}
}

func TestRedisVideoCache_Delete(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisVideoCache(client)
	ctx := context.Background()

	video := cachedTestVideo()

	// Set the video in cache
	err := cache.Set(ctx, video, 5*time.Minute)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Delete the video from cache
	err = cache.Delete(ctx, video.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Verify it's gone
	got, err := cache.Get(ctx, video.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
}

func TestRedisVideoCache_Delete_NonExistent(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisVideoCache(client)
	ctx := context.Background()

	// Delete non-existent video should not error
	err := cache.Delete(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Delete failed for non-existent key: %v", err)
	}
}

func TestRedisVideoCache_NoTags(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisVideoCache(client)
	ctx := context.Background()

	video := cachedTestVideo()
	video.Tags = nil

	if err := cache.Set(ctx, video, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, video.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", got.Tags)
	}
}

func TestRedisVideoCache_buildKey(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewRedisVideoCache(client)
	videoID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	key := cache.buildKey(videoID)
	expected := "video:550e8400-e29b-41d4-a716-446655440000"

	if key != expected {
		t.Errorf("buildKey() = %v, want %v", key, expected)
	}
}
