package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

// RealtimeStore keeps the course collection in a Redis hash and fans
// out every write over pub/sub so subscribers can re-read and replace
// the full collection.
type RealtimeStore struct {
	client  *redis.Client
	key     string // hash: field = course id, value = JSON document
	channel string
}

func NewRealtimeStore(client *redis.Client, prefix string) *RealtimeStore {
	return &RealtimeStore{
		client:  client,
		key:     prefix + "courses",
		channel: prefix + "courses:events",
	}
}

// readAll flattens the keyed hash into an ordered list.
func (s *RealtimeStore) readAll(ctx context.Context) ([]model.Course, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read courses: %w", err)
	}

	courses := make([]model.Course, 0, len(raw))
	for id, doc := range raw {
		course, err := decodeCourse(id, []byte(doc))
		if err != nil {
			logger.Warn("skipping malformed course document", err)
			continue
		}
		courses = append(courses, course)
	}

	sortByCreation(courses)
	return courses, nil
}

func (s *RealtimeStore) GetAll(ctx context.Context) ([]model.Course, error) {
	return s.readAll(ctx)
}

func (s *RealtimeStore) GetByID(ctx context.Context, id string) (*model.Course, error) {
	doc, err := s.client.HGet(ctx, s.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read course %s: %w", id, err)
	}

	course, err := decodeCourse(id, []byte(doc))
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *RealtimeStore) Create(ctx context.Context, course model.Course) (model.Course, error) {
	now := time.Now().UnixMilli()
	course.ID = model.NewEntryID()
	course.CreatedAt = now
	course.UpdatedAt = now

	if err := s.write(ctx, course); err != nil {
		return model.Course{}, err
	}

	s.publish(ctx, "created", course.ID)
	return course, nil
}

func (s *RealtimeStore) Update(ctx context.Context, id string, course model.Course) (model.Course, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Course{}, err
	}
	if existing == nil {
		return model.Course{}, model.ErrCourseNotFound
	}

	// Full-document replace; only identity and createdAt survive.
	course.ID = id
	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = time.Now().UnixMilli()

	if err := s.write(ctx, course); err != nil {
		return model.Course{}, err
	}

	s.publish(ctx, "updated", id)
	return course, nil
}

func (s *RealtimeStore) Delete(ctx context.Context, id string) error {
	// No existence check: deleting a missing id stays a success.
	if err := s.client.HDel(ctx, s.key, id).Err(); err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}

	s.publish(ctx, "deleted", id)
	return nil
}

func (s *RealtimeStore) Duplicate(ctx context.Context, id string) (model.Course, error) {
	source, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Course{}, err
	}
	if source == nil {
		return model.Course{}, model.ErrCourseNotFound
	}

	copy := source.Clone()
	copy.Title = copy.Title + " (Copy)"
	return s.Create(ctx, copy)
}

// Subscribe delivers the current collection immediately, then again on
// every event any writer publishes. The returned teardown is safe to
// call more than once, including after the channel is gone.
func (s *RealtimeStore) Subscribe(ctx context.Context, fn func([]model.Course)) (func(), error) {
	pubsub := s.client.Subscribe(ctx, s.channel)

	// Force the subscription onto the wire before the first snapshot so
	// no event between snapshot and subscribe is lost.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to course events: %w", err)
	}

	go func() {
		s.push(ctx, fn)
		for range pubsub.Channel() {
			s.push(ctx, fn)
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				logger.Warn("failed to close course subscription", err)
			}
		})
	}
	return unsubscribe, nil
}

// push re-reads the collection and delivers it. On a read failure the
// callback is skipped: subscribers keep their last good snapshot
// rather than receive an empty list the store never held.
func (s *RealtimeStore) push(ctx context.Context, fn func([]model.Course)) {
	courses, err := s.readAll(ctx)
	if err != nil {
		logger.Error("failed to read courses for subscription push", err)
		return
	}
	fn(courses)
}

func (s *RealtimeStore) write(ctx context.Context, course model.Course) error {
	doc, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("failed to encode course: %w", err)
	}
	if err := s.client.HSet(ctx, s.key, course.ID, doc).Err(); err != nil {
		return fmt.Errorf("failed to write course %s: %w", course.ID, err)
	}
	return nil
}

func (s *RealtimeStore) publish(ctx context.Context, event, id string) {
	if err := s.client.Publish(ctx, s.channel, event+":"+id).Err(); err != nil {
		// Writers must not fail because listeners cannot be notified.
		logger.Warn("failed to publish course event", err)
	}
}
