package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis"
	"github.com/karansingh008/Tourizio/domain"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	sessionKeyPrefix = "session:"
	wizardKeyPrefix  = "wizard:"

	// Sessions expire after a day; wizard entries share the same bound so a
	// draft booking never outlives its session.
	sessionTTL = 24 * time.Hour
)

type SessionRedisCache struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewSessionRedisCache(client *redis.Client, tracer trace.Tracer) domain.SessionCache {
	return &SessionRedisCache{
		client: client,
		tracer: tracer,
	}
}

func (cache *SessionRedisCache) PostSession(ctx context.Context, session *domain.Session) error {
	_, span := cache.tracer.Start(ctx, "SessionRedisCache.PostSession")
	defer span.End()

	payload, err := json.Marshal(session)
	if err != nil {
		span.SetStatus(codes.Error, "Error marshaling session")
		return err
	}

	result := cache.client.Set(sessionKeyPrefix+session.ID, payload, sessionTTL)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting session")
		log.Printf("redis set error: %s", result.Err())
		return result.Err()
	}

	return nil
}

func (cache *SessionRedisCache) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	_, span := cache.tracer.Start(ctx, "SessionRedisCache.GetSession")
	defer span.End()

	payload, err := cache.client.Get(sessionKeyPrefix + sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.SetStatus(codes.Error, "Error getting session")
		log.Println(err)
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		span.SetStatus(codes.Error, "Error unmarshaling session")
		return nil, err
	}

	return &session, nil
}

func (cache *SessionRedisCache) DelSession(ctx context.Context, sessionID string) error {
	_, span := cache.tracer.Start(ctx, "SessionRedisCache.DelSession")
	defer span.End()

	// The wizard entry dies with the session.
	result := cache.client.Del(sessionKeyPrefix+sessionID, wizardKeyPrefix+sessionID)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error deleting session")
		log.Println(result.Err())
		return result.Err()
	}

	return nil
}

func (cache *SessionRedisCache) PostWizard(ctx context.Context, sessionID string, payload string) error {
	_, span := cache.tracer.Start(ctx, "SessionRedisCache.PostWizard")
	defer span.End()

	result := cache.client.Set(wizardKeyPrefix+sessionID, payload, sessionTTL)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting wizard state")
		log.Printf("redis set error: %s", result.Err())
		return result.Err()
	}

	return nil
}

func (cache *SessionRedisCache) GetWizard(ctx context.Context, sessionID string) (string, error) {
	_, span := cache.tracer.Start(ctx, "SessionRedisCache.GetWizard")
	defer span.End()

	payload, err := cache.client.Get(wizardKeyPrefix + sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		span.SetStatus(codes.Error, "Error getting wizard state")
		log.Println(err)
		return "", err
	}

	return payload, nil
}

func (cache *SessionRedisCache) DelWizard(ctx context.Context, sessionID string) error {
	_, span := cache.tracer.Start(ctx, "SessionRedisCache.DelWizard")
	defer span.End()

	result := cache.client.Del(wizardKeyPrefix + sessionID)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error deleting wizard state")
		log.Println(result.Err())
		return result.Err()
	}

	return nil
}
