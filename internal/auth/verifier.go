// Package auth turns a bearer token into the id of the user it was issued to.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"

	config "kanban-board.com/kanban-board/internal/configs"
	"kanban-board.com/kanban-board/internal/exceptions"
)

const clockSkew = time.Minute

// Verifier checks tokens either against a remote JWKS or, for local setups,
// against a shared HS256 secret.
type Verifier struct {
	jwks     *keyfunc.JWKS
	secret   []byte
	audience string
	issuer   string
	parser   *jwt.Parser
}

func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	v := &Verifier{audience: cfg.Audience, issuer: cfg.Issuer}

	if cfg.JWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  5 * time.Minute,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, err
		}
		v.jwks = jwks
		v.parser = jwt.NewParser(jwt.WithValidMethods(cfg.Algorithms))
		return v, nil
	}

	if cfg.SharedSecret == "" {
		return nil, errors.New("auth: neither JWKS URL nor shared secret configured")
	}
	v.secret = []byte(cfg.SharedSecret)
	v.parser = jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return v, nil
}

// NewSharedSecretVerifier is the HS256-only verifier used by tests and local
// tooling.
func NewSharedSecretVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Close stops the background JWKS refresh.
func (v *Verifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// Verify returns the user id carried by token in its "sub" claim, or in "id"
// for issuers that use that name.
func (v *Verifier) Verify(token string) (string, error) {
	if token == "" {
		return "", exceptions.Unauthorized("missing token")
	}

	parsed, err := v.parser.Parse(token, v.key)
	if err != nil {
		return "", exceptions.Unauthorized("invalid token: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", exceptions.Unauthorized("invalid claims")
	}

	now := time.Now()
	if !claims.VerifyExpiresAt(now.Add(-clockSkew).Unix(), true) {
		return "", exceptions.Unauthorized("token expired")
	}
	if !claims.VerifyNotBefore(now.Add(clockSkew).Unix(), false) {
		return "", exceptions.Unauthorized("token not valid yet")
	}
	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return "", exceptions.Unauthorized("invalid audience")
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return "", exceptions.Unauthorized("invalid issuer")
	}

	for _, name := range []string{"sub", "id"} {
		if id, ok := claims[name].(string); ok && id != "" {
			return id, nil
		}
	}
	return "", exceptions.Unauthorized("token carries no user id")
}

func (v *Verifier) key(t *jwt.Token) (any, error) {
	if v.jwks != nil {
		return v.jwks.Keyfunc(t)
	}
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return v.secret, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", exceptions.Unauthorized("missing bearer token")
	}
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return "", exceptions.Unauthorized("malformed bearer token")
	}
	return token, nil
}
