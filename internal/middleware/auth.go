package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "userID"

const (
	cookieName    = "user_id"
	cookieExpires = 365 * 24 * time.Hour
)

// AuthMiddleware identifies each visitor with a numeric user id carried in
// an HMAC-signed cookie. New visitors get a freshly minted id.
type AuthMiddleware struct {
	secretKey []byte
	logger    *zap.Logger
}

func NewAuthMiddleware(secret string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		secretKey: []byte(secret),
		logger:    logger,
	}
}

func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, valid := a.userIDFromRequest(r)
		if !valid {
			a.logger.Warn("Invalid cookie signature")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if userID == 0 {
			userID = mintUserID()
			a.setUserCookie(w, userID)
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromRequest returns (0, true) when no cookie is present and
// (0, false) when a cookie exists but fails signature verification.
func (a *AuthMiddleware) userIDFromRequest(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return 0, true
	}

	userID, valid := a.parseCookie(cookie.Value)
	if !valid {
		return 0, false
	}

	return userID, true
}

func (a *AuthMiddleware) setUserCookie(w http.ResponseWriter, userID int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    a.signUserID(userID),
		Path:     "/",
		Expires:  time.Now().Add(cookieExpires),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *AuthMiddleware) signUserID(userID int64) string {
	id := strconv.FormatInt(userID, 10)
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (a *AuthMiddleware) parseCookie(cookieValue string) (int64, bool) {
	parts := strings.Split(cookieValue, ".")
	if len(parts) != 2 {
		return 0, false
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}

	expected := a.signUserID(userID)
	if !hmac.Equal([]byte(cookieValue), []byte(expected)) {
		return 0, false
	}

	return userID, true
}

func mintUserID() int64 {
	var buf [8]byte
	rand.Read(buf[:])
	id := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	if id == 0 {
		id = 1
	}
	return id
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
