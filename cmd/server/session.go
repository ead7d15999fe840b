package main

import (
	"encoding/json"
	"net/http"
	"time"

	"storefront-backend/services/session"
	"storefront-backend/services/session/db"

	"github.com/go-chi/chi/v5"
)

type userBody struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(session.TokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func InitSession(router chi.Router, config Config) error {
	database, err := config.SessionDatabase.OpenDB(db.Schema)
	if err != nil {
		return err
	}

	service := session.NewService(database)

	router.Get("/api/me", func(w http.ResponseWriter, r *http.Request) {
		user, _ := service.UserFromToken(r.Context(), sessionToken(r))
		if user == nil {
			writeJSON(w, http.StatusOK, map[string]any{"user": nil})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"user": userBody{ID: user.ID, Username: user.Username},
		})
	})

	router.Post("/api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var creds credentialsBody
		err := json.NewDecoder(r.Body).Decode(&creds)
		if err != nil || creds.Username == "" || creds.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}
		token, err := service.SignUp(r.Context(), creds.Username, creds.Password)
		if err != nil {
			writeError(w, http.StatusConflict, "failed to create account")
			return
		}
		setSessionCookie(w, token, time.Now().Add(time.Hour*24*7))
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	router.Post("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var creds credentialsBody
		err := json.NewDecoder(r.Body).Decode(&creds)
		if err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		token, err := service.SignIn(r.Context(), creds.Username, creds.Password)
		if err == session.InvalidCredentials {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "sign in failed")
			return
		}
		setSessionCookie(w, token, time.Now().Add(time.Hour*24*7))
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	router.Post("/api/auth/signout", func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token != "" {
			_ = service.SignOut(r.Context(), token)
		}
		setSessionCookie(w, "", time.Unix(0, 0))
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	return nil
}
