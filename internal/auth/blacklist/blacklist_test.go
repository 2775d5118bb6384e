package blacklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/internal/domain"
)

func TestMemoryUserBan(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.CheckUser(ctx, 1); err != nil {
		t.Fatalf("unbanned user flagged: %v", err)
	}
	if err := m.BanUser(ctx, 1); err != nil {
		t.Fatalf("BanUser: %v", err)
	}
	if err := m.CheckUser(ctx, 1); !errors.Is(err, domain.ErrUserBanned) {
		t.Errorf("err = %v, want ErrUserBanned", err)
	}
	if err := m.CheckUser(ctx, 2); err != nil {
		t.Errorf("ban leaked to another user: %v", err)
	}
}

func TestMemoryTokenBan(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.BanToken(ctx, "tok", time.Hour); err != nil {
		t.Fatalf("BanToken: %v", err)
	}
	if err := m.CheckToken(ctx, "tok"); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Errorf("err = %v, want ErrTokenRevoked", err)
	}
	if err := m.CheckToken(ctx, "other"); err != nil {
		t.Errorf("ban leaked to another token: %v", err)
	}
}

// A ttl at or below zero means the token already expired on its own; there
// is nothing left to revoke.
func TestMemoryTokenBanExpiredTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.BanToken(ctx, "tok", -time.Second); err != nil {
		t.Fatalf("BanToken: %v", err)
	}
	if err := m.CheckToken(ctx, "tok"); err != nil {
		t.Errorf("expired ttl still tracked: %v", err)
	}
}
