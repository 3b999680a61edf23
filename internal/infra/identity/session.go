package identity

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const jwksTTL = time.Hour

// Session is the signed-in back-office user for one request.
type Session struct {
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}

type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
}

// KeyCache stores raw JWKS documents outside the process.
type KeyCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisKeyCache struct {
	Client *redis.Client
}

func (c RedisKeyCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c RedisKeyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

type VerifierConfig struct {
	Domain   string
	ClientID string
	// BaseURL overrides https://{Domain} for the JWKS fetch; used by tests.
	BaseURL string
}

// SessionVerifier checks ID tokens issued by the tenant. Keys are cached in
// the KeyCache when one is set and fetched on every call otherwise.
type SessionVerifier struct {
	HTTPClient *http.Client
	Cache      KeyCache
	cfg        VerifierConfig
	logger     zerolog.Logger
}

func NewSessionVerifier(cfg VerifierConfig, cache KeyCache, logger zerolog.Logger) *SessionVerifier {
	if cfg.BaseURL == "" && cfg.Domain != "" {
		cfg.BaseURL = "https://" + cfg.Domain
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &SessionVerifier{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Cache:      cache,
		cfg:        cfg,
		logger:     logger.With().Str("component", "session").Logger(),
	}
}

func (v *SessionVerifier) issuer() string {
	return "https://" + v.cfg.Domain + "/"
}

func (v *SessionVerifier) cacheKey() string {
	return "jwks:" + v.cfg.Domain
}

func (v *SessionVerifier) Verify(ctx context.Context, raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrNoSession
	}
	if v.cfg.Domain == "" || v.cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: missing AUTH0_DOMAIN or AUTH0_CLIENT_ID", ErrNotConfigured)
	}

	unverified, _, err := jwt.NewParser().ParseUnverified(raw, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: missing key id", ErrInvalidSession)
	}

	key, err := v.publicKey(ctx, kid)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer()),
		jwt.WithAudience(v.cfg.ClientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	sess := &Session{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// publicKey looks kid up in the cached key set and refetches once when it is
// missing, which covers key rotation.
func (v *SessionVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if v.Cache != nil {
		doc, ok, err := v.Cache.Get(ctx, v.cacheKey())
		if err != nil {
			v.logger.Warn().Err(err).Msg("jwks cache read failed")
		}
		if ok {
			if keys, err := parseJWKS(doc); err == nil {
				if key, found := keys[kid]; found {
					return key, nil
				}
			}
		}
	}

	doc, err := v.fetchJWKS(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := parseJWKS(doc)
	if err != nil {
		return nil, err
	}
	if v.Cache != nil {
		if err := v.Cache.Set(ctx, v.cacheKey(), doc, jwksTTL); err != nil {
			v.logger.Warn().Err(err).Msg("jwks cache write failed")
		}
	}
	key, ok := keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: key %s not found in JWKS", ErrInvalidSession, kid)
	}
	return key, nil
}

func (v *SessionVerifier) fetchJWKS(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.BaseURL+"/.well-known/jwks.json", nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch JWKS: %v", ErrAuthBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: JWKS status %d", ErrAuthBackendUnavailable, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type jwksDocument struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func parseJWKS(doc []byte) (map[string]*rsa.PublicKey, error) {
	var jwks jwksDocument
	if err := json.Unmarshal(doc, &jwks); err != nil {
		return nil, fmt.Errorf("decode JWKS: %w", err)
	}
	keys := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for _, k := range jwks.Keys {
		if k.Kty != "RSA" {
			continue
		}
		n, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			continue
		}
		e, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(n),
			E: int(new(big.Int).SetBytes(e).Int64()),
		}
	}
	return keys, nil
}
