package scoreboard

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader carries the client API key.
const APIKeyHeader = "X-Api-Key"

// HashAPIKey returns the bcrypt hash to configure a server with.
func HashAPIKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(b), err
}

func checkAPIKey(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

// TokenResponse is the body of a successful POST /token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) signToken(subject string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := token.SignedString(s.opts.JWTSecret)
	return ss, exp, err
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.opts.APIKeyHash == "" || len(s.opts.JWTSecret) == 0 {
		writeError(w, http.StatusForbidden, "uploads_disabled")
		return
	}
	key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
	if key == "" || !checkAPIKey(s.opts.APIKeyHash, key) {
		writeError(w, http.StatusUnauthorized, "bad_api_key")
		return
	}

	token, exp, err := s.signToken("client")
	if err != nil {
		s.log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: token, ExpiresAt: exp})
}

func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" || len(s.opts.JWTSecret) == 0 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var claims jwt.RegisteredClaims
		token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
			return s.opts.JWTSecret, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.opts.Now),
		)
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
