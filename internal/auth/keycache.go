package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

// DefaultKeyCacheTTL is how long a fetched key set stays fresh.
const DefaultKeyCacheTTL = time.Hour

// JWK is a single public signing key as published by the federated
// identity provider's JWKS endpoint.
type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// PublicKey decodes the RSA modulus and exponent of the key.
func (k JWK) PublicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	e := 0
	for _, b := range eBytes {
		e = e<<8 + int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}

type cachedKeySet struct {
	keys   []JWK
	expiry time.Time
}

// KeyCache holds the identity provider's current signing keys and avoids
// refetching on every verification. One instance is constructed at
// startup and injected into the token service.
//
// Refresh is not mutually exclusive: concurrent misses may each fetch the
// endpoint and each store their result; the last store wins. That only
// costs redundant fetches, never correctness, because every successful
// fetch returns the provider's authoritative current set. Only the slot
// swap itself is atomic.
type KeyCache struct {
	url    string
	ttl    time.Duration
	client *http.Client
	slot   atomic.Pointer[cachedKeySet]
}

// NewKeyCache creates a cache for the given JWKS endpoint. A ttl of zero
// uses DefaultKeyCacheTTL.
func NewKeyCache(url string, ttl time.Duration) *KeyCache {
	if ttl <= 0 {
		ttl = DefaultKeyCacheTTL
	}
	return &KeyCache{
		url:    url,
		ttl:    ttl,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Keys returns the cached key set when fresh, otherwise fetches a new one.
// A fetch failure returns UnavailableError: verification cannot proceed,
// which is not the same as "key not found".
func (c *KeyCache) Keys(ctx context.Context) ([]JWK, error) {
	if cached := c.slot.Load(); cached != nil && time.Now().Before(cached.expiry) {
		return cached.keys, nil
	}

	keys, err := c.fetch(ctx)
	if err != nil {
		return nil, domain.ErrUnavailable("fetch signing keys: %v", err)
	}
	c.slot.Store(&cachedKeySet{keys: keys, expiry: time.Now().Add(c.ttl)})
	return keys, nil
}

func (c *KeyCache) fetch(ctx context.Context) ([]JWK, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("key endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		Keys []JWK `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode key set: %w", err)
	}
	return body.Keys, nil
}
