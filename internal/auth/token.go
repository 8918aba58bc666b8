package auth

import (
	"context"
	"crypto"
	"crypto/hmac"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

// LocalTokenLifetime is how long an issued session token stays valid.
const LocalTokenLifetime = 7 * 24 * time.Hour

// ErrTokenRejected is returned for any token that cannot be accepted:
// malformed, expired, wrong audience, unknown key, or bad signature.
// Callers are deliberately not told which, so a probe learns nothing.
var ErrTokenRejected = errors.New("token rejected")

var b64 = base64.RawURLEncoding

// localHeader is the fixed header segment of every locally issued token.
var localHeader = mustSegment(map[string]string{"typ": "JWT", "alg": "HS256"})

func mustSegment(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b64.EncodeToString(b)
}

// TokenService issues local session tokens and verifies both local and
// federated tokens. It holds no session state; validity is derived
// entirely from the signature and the exp claim at verification time.
type TokenService struct {
	keys *KeyCache
}

// NewTokenService creates a TokenService that verifies federated tokens
// against the injected key cache.
func NewTokenService(keys *KeyCache) *TokenService {
	return &TokenService{keys: keys}
}

// IssueLocal builds a three-segment token
// base64url(header).base64url(payload).base64url(signature) signed with
// HMAC-SHA256 over the first two segments.
func (s *TokenService) IssueLocal(claims domain.Claims, secret string) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	signingInput := localHeader + "." + b64.EncodeToString(payload)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signingInput))
	return signingInput + "." + b64.EncodeToString(mac.Sum(nil)), nil
}

// VerifyLocal checks a locally issued session token. Expiry is checked
// from the decoded claims before the signature is recomputed; both
// failure modes collapse to ErrTokenRejected.
func (s *TokenService) VerifyLocal(token, secret string) (domain.Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return domain.Claims{}, ErrTokenRejected
	}

	claims, err := decodeClaims(segments[1])
	if err != nil {
		return domain.Claims{}, ErrTokenRejected
	}
	if claims.Exp < time.Now().Unix() {
		return domain.Claims{}, ErrTokenRejected
	}

	sig, err := b64.DecodeString(segments[2])
	if err != nil {
		return domain.Claims{}, ErrTokenRejected
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(segments[0] + "." + segments[1]))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return domain.Claims{}, ErrTokenRejected
	}
	return claims, nil
}

// VerifyFederated checks an externally issued RS256 identity token
// against the cached provider keys.
//
// Audience and expiry are checked from the token's own claims before the
// signature: that is a cheap fail-fast, not a trust decision. A forged
// token with well-formed claims still reaches, and fails, the RSA
// verification, which is the only trust boundary here. An unavailable
// key source also rejects: verification fails closed.
func (s *TokenService) VerifyFederated(ctx context.Context, token, expectedAudience string) (domain.Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return domain.Claims{}, ErrTokenRejected
	}

	headerBytes, err := b64.DecodeString(segments[0])
	if err != nil {
		return domain.Claims{}, ErrTokenRejected
	}
	var header struct {
		Alg string `json:"alg"`
		Kid string `json:"kid"`
	}
	if err := json.Unmarshal(headerBytes, &header); err != nil || header.Kid == "" {
		return domain.Claims{}, ErrTokenRejected
	}

	claims, err := decodeClaims(segments[1])
	if err != nil {
		return domain.Claims{}, ErrTokenRejected
	}
	if claims.Aud != expectedAudience || claims.Exp < time.Now().Unix() {
		return domain.Claims{}, ErrTokenRejected
	}

	keys, err := s.keys.Keys(ctx)
	if err != nil {
		return domain.Claims{}, ErrTokenRejected
	}
	var pub *rsa.PublicKey
	for _, k := range keys {
		if k.Kid == header.Kid {
			if pub, err = k.PublicKey(); err != nil {
				return domain.Claims{}, ErrTokenRejected
			}
			break
		}
	}
	if pub == nil {
		return domain.Claims{}, ErrTokenRejected
	}

	sig, err := b64.DecodeString(segments[2])
	if err != nil {
		return domain.Claims{}, ErrTokenRejected
	}
	digest := sha256.Sum256([]byte(segments[0] + "." + segments[1]))
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig); err != nil {
		return domain.Claims{}, ErrTokenRejected
	}
	return claims, nil
}

func decodeClaims(segment string) (domain.Claims, error) {
	payload, err := b64.DecodeString(segment)
	if err != nil {
		return domain.Claims{}, err
	}
	var claims domain.Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return domain.Claims{}, err
	}
	return claims, nil
}
