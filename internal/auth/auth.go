package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tiagofoil/valuerank/internal/config"
)

// Verifier checks write-surface credentials. The admin secret is
// compared against a bcrypt hash so the plaintext never sits in the
// environment; the cron secret is a shared token compared in constant
// time.
type Verifier struct {
	adminHash  string
	cronSecret string
}

// NewVerifier creates a verifier from the auth configuration.
func NewVerifier(cfg *config.AuthConfig) *Verifier {
	return &Verifier{
		adminHash:  cfg.AdminSecretHash,
		cronSecret: cfg.CronSecret,
	}
}

// HashSecret hashes a secret for storage in ADMIN_SECRET_HASH.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckAdmin reports whether the request carries the admin secret.
// Always false when no hash is configured: the write surface is closed
// by default, never open by default.
func (v *Verifier) CheckAdmin(r *http.Request) bool {
	if v.adminHash == "" {
		return false
	}

	token, ok := bearerToken(r)
	if !ok {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(v.adminHash), []byte(token)) == nil
}

// CheckCron reports whether the request carries the scraper secret.
func (v *Verifier) CheckCron(r *http.Request) bool {
	if v.cronSecret == "" {
		return false
	}

	token, ok := bearerToken(r)
	if !ok {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(v.cronSecret), []byte(token)) == 1
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return strings.TrimPrefix(header, prefix), true
}
