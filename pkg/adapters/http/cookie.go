package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the signed session id.
const SessionCookieName = "todolists_session"

type sessionKey struct{}

// cookieCodec signs session ids so a client cannot pick someone else's id.
type cookieCodec struct {
	secret []byte
	secure bool
	ttl    time.Duration
}

func (c cookieCodec) sign(id string) string {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify returns the session id carried by a cookie value.
func (c cookieCodec) verify(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(id))
	if !hmac.Equal(got, mac.Sum(nil)) {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (c cookieCodec) cookie(id string) *http.Cookie {
	ck := &http.Cookie{
		Name:     SessionCookieName,
		Value:    c.sign(id),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.ttl > 0 {
		ck.MaxAge = int(c.ttl.Seconds())
	}
	return ck
}

// withSession resolves the session id for every request, issuing a new one when the
// cookie is absent or fails verification. The cookie is re-sent each time to slide its expiry.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if ck, err := r.Cookie(SessionCookieName); err == nil {
			if v, ok := s.cookies.verify(ck.Value); ok {
				id = v
			} else {
				s.logger.Warn("Rejected session cookie", "remote", r.RemoteAddr)
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		http.SetCookie(w, s.cookies.cookie(id))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

// SessionID returns the session id resolved for the request, if any.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
