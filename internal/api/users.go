package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"roombook/internal/auth"
	"roombook/internal/events"
	"roombook/internal/models"
	"roombook/internal/store"
)

var errDuplicateEmail = errors.New("duplicate email")

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		writeMessage(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	digest, err := auth.HashPassword(body.Password, s.cfg.Auth.BcryptCost)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	user := models.User{
		ID:       store.NextID(),
		Name:     body.Name,
		Email:    body.Email,
		Password: digest,
	}

	err = s.store.UpdateUsers(r.Context(), func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == body.Email {
				return nil, errDuplicateEmail
			}
		}
		return append(users, user), nil
	})
	if errors.Is(err, errDuplicateEmail) {
		writeMessage(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	_ = s.events.PublishJSON(events.EventUserRegistered, events.UserEventPayload{
		UserID: user.ID,
		Email:  user.Email,
	})

	writeMessage(w, http.StatusOK, "Registered successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	users, err := s.store.Users(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	var user *models.User
	for i := range users {
		if users[i].Email == body.Email {
			user = &users[i]
			break
		}
	}
	if user == nil || !auth.CheckPassword(body.Password, user.Password) {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(user.ID, user.Email, s.secret, s.cfg.Auth.TTL())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user.Public(),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims := claimsFrom(r)

	users, err := s.store.Users(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	for _, u := range users {
		if u.ID == claims.UserID {
			writeJSON(w, http.StatusOK, u.Public())
			return
		}
	}

	writeMessage(w, http.StatusNotFound, "User not found")
}
