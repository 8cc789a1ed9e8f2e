package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is how long a check-in page stays usable after it was opened.
const DefaultWindow = 20 * time.Minute

var (
	ErrInvalidToken = errors.New("invalid or tampered session token")
	ErrExpiredToken = errors.New("session token expired")
)

// Options configures a TokenService.
type Options struct {
	Secret []byte
	Window time.Duration
}

// TokenService issues and verifies check-in session tokens of the form
// "<issuedAtMillis>.<hex HMAC-SHA256(secret, issuedAtMillis)>". It keeps no state.
type TokenService struct {
	secret []byte
	window time.Duration
}

func NewTokenService(opts Options) *TokenService {
	window := opts.Window
	if window <= 0 {
		window = DefaultWindow
	}
	return &TokenService{
		secret: opts.Secret,
		window: window,
	}
}

func (s *TokenService) Window() time.Duration {
	return s.window
}

// Issue returns a fresh token bound to now.
func (s *TokenService) Issue(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	return millis + "." + s.sign(millis)
}

// Verify checks the signature and the age of token at now.
func (s *TokenService) Verify(token string, now time.Time) error {
	millis, signature, ok := strings.Cut(token, ".")
	if !ok || millis == "" || signature == "" {
		return ErrInvalidToken
	}

	issuedAt, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	if !hmac.Equal([]byte(signature), []byte(s.sign(millis))) {
		return ErrInvalidToken
	}

	if now.UnixMilli()-issuedAt > s.window.Milliseconds() {
		return ErrExpiredToken
	}

	return nil
}

func (s *TokenService) sign(millis string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(millis))
	return hex.EncodeToString(mac.Sum(nil))
}
