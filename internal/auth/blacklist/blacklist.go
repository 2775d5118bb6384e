package blacklist

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"taskboard/internal/domain"
)

const (
	UserPrefix  = "user_blacklist:"
	TokenPrefix = "token_blacklist:"
)

// Blacklist tracks banned users and revoked tokens. The auth gate consults
// it on every protected request; logout and admin bans feed it.
type Blacklist interface {
	BanUser(ctx context.Context, userID uint) error
	BanToken(ctx context.Context, token string, ttl time.Duration) error
	CheckUser(ctx context.Context, userID uint) error
	CheckToken(ctx context.Context, token string) error
}

type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) BanUser(ctx context.Context, userID uint) error {
	key := UserPrefix + strconv.FormatUint(uint64(userID), 10)
	if err := b.client.Set(ctx, key, "banned", 0).Err(); err != nil {
		return fmt.Errorf("ban user: %w", err)
	}
	return nil
}

// BanToken revokes a token. The entry only needs to outlive the token
// itself, so ttl is the remainder of its lifetime.
func (b *RedisBlacklist) BanToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, TokenPrefix+token, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("ban token: %w", err)
	}
	return nil
}

func (b *RedisBlacklist) CheckUser(ctx context.Context, userID uint) error {
	key := UserPrefix + strconv.FormatUint(uint64(userID), 10)
	_, err := b.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	} else if err != nil {
		return fmt.Errorf("check user blacklist: %w", err)
	}
	return domain.ErrUserBanned
}

func (b *RedisBlacklist) CheckToken(ctx context.Context, token string) error {
	_, err := b.client.Get(ctx, TokenPrefix+token).Result()
	if err == redis.Nil {
		return nil
	} else if err != nil {
		return fmt.Errorf("check token blacklist: %w", err)
	}
	return domain.ErrTokenRevoked
}

// Memory is an in-process Blacklist for single-node deployments and tests.
type Memory struct {
	mu     sync.Mutex
	users  map[uint]struct{}
	tokens map[string]time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:  make(map[uint]struct{}),
		tokens: make(map[string]time.Time),
	}
}

func (m *Memory) BanUser(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = struct{}{}
	return nil
}

func (m *Memory) BanToken(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (m *Memory) CheckUser(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; ok {
		return domain.ErrUserBanned
	}
	return nil
}

func (m *Memory) CheckToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.tokens[token]
	if !ok {
		return nil
	}
	if time.Now().After(expiry) {
		delete(m.tokens, token)
		return nil
	}
	return domain.ErrTokenRevoked
}
