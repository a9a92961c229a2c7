package repositories

import (
	"context"
	"strings"
)

// KeyValue is the subset of [KVStore] the feature stores depend on.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenStore persists the partner API bearer token.
//
// An absent or blank token means the partner integration is inactive.
type TokenStore struct {
	kv KeyValue
}

func NewTokenStore(kv KeyValue) *TokenStore {
	return &TokenStore{kv: kv}
}

// Token returns the stored token or "" when none is set.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil || !ok {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

// SetToken stores the token; a blank token clears it.
func (s *TokenStore) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.kv.Delete(ctx, TokenKey)
	}
	return s.kv.Set(ctx, TokenKey, token)
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey)
}
