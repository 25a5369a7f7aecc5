package api

import (
	"encoding/json"
	"net/http"

	"roombook/internal/models"
	"roombook/internal/store"
)

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListContacts(w, r)
	case http.MethodPost:
		s.handleCreateContact(w, r)
	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.Contacts(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title  string `json:"title"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		UserID int64  `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	contact := models.Contact{
		ID:     store.NextID(),
		Title:  body.Title,
		Name:   body.Name,
		Email:  body.Email,
		UserID: body.UserID,
	}

	err := s.store.UpdateContacts(r.Context(), func(contacts []models.Contact) ([]models.Contact, error) {
		return append(contacts, contact), nil
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Contact created",
		"contact": contact,
	})
}

func (s *Server) handleContactByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := pathID(r.URL.Path, "/api/contacts/")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	contacts, err := s.store.Contacts(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	for _, c := range contacts {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}

	writeMessage(w, http.StatusNotFound, "Contact not found")
}
