package http

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
)

const DefaultBasicAuthRealm = "chatten"

func (s *Server) basicAuth(next http.Handler) http.Handler {
	auth := s.opts.BasicAuth

	expectedUsername := sha256.Sum256([]byte(auth.Username))
	expectedPassword := sha256.Sum256([]byte(auth.Password))

	realm := auth.Realm
	if realm == "" {
		realm = DefaultBasicAuthRealm
	}

	challenge := fmt.Sprintf(`Basic realm="%s", charset="UTF-8"`, realm)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if ok {
			usernameHash := sha256.Sum256([]byte(username))
			passwordHash := sha256.Sum256([]byte(password))

			usernameMatch := subtle.ConstantTimeCompare(usernameHash[:], expectedUsername[:]) == 1
			passwordMatch := subtle.ConstantTimeCompare(passwordHash[:], expectedPassword[:]) == 1

			if usernameMatch && passwordMatch {
				next.ServeHTTP(w, r)
				return
			}

			slog.WarnContext(r.Context(), "invalid credentials", slog.String("username", username), slog.String("remoteAddr", r.RemoteAddr))
		}

		w.Header().Set("WWW-Authenticate", challenge)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)

		res := map[string]string{"error": http.StatusText(http.StatusUnauthorized)}
		if err := json.NewEncoder(w).Encode(res); err != nil {
			slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(err))
		}
	})
}
