package service

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelofalero/swse-architech/internal/auth"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.account.Register(ctx, "a@b.com", "p@ss", "A")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotContains(t, user.PasswordHash, "p@ss")

	token, err := env.account.Login(ctx, "a@b.com", "p@ss")
	require.NoError(t, err)

	claims, err := auth.NewTokenService(nil).VerifyLocal(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Sub)
	assert.Equal(t, "a@b.com", claims.Email)
	// Session lifetime is seven days.
	assert.InDelta(t, time.Now().Add(auth.LocalTokenLifetime).Unix(), claims.Exp, 5)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.account.Register(ctx, "a@b.com", "p@ss", "A")
	require.NoError(t, err)

	_, err = env.account.Register(ctx, "a@b.com", "other", "B")
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestLoginRejections(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.account.Register(ctx, "a@b.com", "p@ss", "A")
	require.NoError(t, err)

	var unauthorized *domain.UnauthorizedError

	// Wrong password and unknown email yield the same outcome.
	_, err = env.account.Login(ctx, "a@b.com", "wrong")
	require.ErrorAs(t, err, &unauthorized)
	wrongPassword := err.Error()

	_, err = env.account.Login(ctx, "nobody@b.com", "p@ss")
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, wrongPassword, err.Error())
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	var validation *domain.ValidationError
	_, err := env.account.Register(ctx, "", "p@ss", "A")
	require.ErrorAs(t, err, &validation)
	_, err = env.account.Register(ctx, "a@b.com", "", "A")
	require.ErrorAs(t, err, &validation)
}

// federatedFixture wires an AccountService whose token service trusts a
// local JWKS server, and returns a signer for tokens that server vouches
// for.
func federatedFixture(t *testing.T, env *testEnv) func(claims domain.Claims) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string][]auth.JWK{"keys": {{
			Kty: "RSA",
			Kid: "fed-key",
			N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString([]byte{0x01, 0x00, 0x01}),
		}}})
	}))
	t.Cleanup(srv.Close)

	tokens := auth.NewTokenService(auth.NewKeyCache(srv.URL, time.Hour))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.account = NewAccountService(env.users, tokens, "test-secret", "test-audience", logger)

	return func(claims domain.Claims) string {
		header, err := json.Marshal(map[string]string{"alg": "RS256", "kid": "fed-key"})
		require.NoError(t, err)
		payload, err := json.Marshal(claims)
		require.NoError(t, err)
		input := base64.RawURLEncoding.EncodeToString(header) + "." +
			base64.RawURLEncoding.EncodeToString(payload)
		digest := sha256.Sum256([]byte(input))
		sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
		require.NoError(t, err)
		return input + "." + base64.RawURLEncoding.EncodeToString(sig)
	}
}

func TestFederatedLoginProvisionsUser(t *testing.T) {
	env := newTestEnv(t)
	sign := federatedFixture(t, env)

	idToken := sign(domain.Claims{
		Sub:   "google-sub-1",
		Email: "fed@b.com",
		Name:  "Fed",
		Aud:   "test-audience",
		Exp:   time.Now().Add(time.Hour).Unix(),
	})

	session, err := env.account.FederatedLogin(ctx, idToken)
	require.NoError(t, err)

	claims, err := auth.NewTokenService(nil).VerifyLocal(session, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", claims.Sub)

	// The account exists now; a second sign-in reuses it.
	user, err := env.users.GetByID(ctx, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, "fed@b.com", user.Email)

	_, err = env.account.FederatedLogin(ctx, idToken)
	require.NoError(t, err)
}

func TestFederatedLoginLinksByEmail(t *testing.T) {
	env := newTestEnv(t)
	sign := federatedFixture(t, env)

	existing, err := env.account.Register(ctx, "fed@b.com", "p@ss", "Fed")
	require.NoError(t, err)

	idToken := sign(domain.Claims{
		Sub:   "google-sub-2",
		Email: "fed@b.com",
		Aud:   "test-audience",
		Exp:   time.Now().Add(time.Hour).Unix(),
	})

	session, err := env.account.FederatedLogin(ctx, idToken)
	require.NoError(t, err)

	// The session is issued for the existing local account, not a new one.
	claims, err := auth.NewTokenService(nil).VerifyLocal(session, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, claims.Sub)
}

func TestFederatedLoginRejectsBadToken(t *testing.T) {
	env := newTestEnv(t)
	sign := federatedFixture(t, env)

	var unauthorized *domain.UnauthorizedError

	// Wrong audience.
	_, err := env.account.FederatedLogin(ctx, sign(domain.Claims{
		Sub: "x", Aud: "other", Exp: time.Now().Add(time.Hour).Unix(),
	}))
	require.ErrorAs(t, err, &unauthorized)

	// Garbage.
	_, err = env.account.FederatedLogin(ctx, "not.a.token")
	require.ErrorAs(t, err, &unauthorized)
}
