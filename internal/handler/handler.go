package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"newspulse/internal/models"
	"newspulse/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type removeBookmarkRequest struct {
	ArticleURL string `json:"articleUrl"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if _, err := h.svc.Register(req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			writeError(w, http.StatusBadRequest, "user with this email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "user created"})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ListBookmarks returns the authenticated user's saved articles
func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.ListBookmarks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookmarks")
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// AddBookmark saves an article for the authenticated user
func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	var article models.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if article.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	if err := h.svc.AddBookmark(r.Context(), &article); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add bookmark")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "bookmark added"})
}

// RemoveBookmark deletes the authenticated user's bookmark for a URL
func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	var req removeBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ArticleURL == "" {
		writeError(w, http.StatusBadRequest, "articleUrl is required")
		return
	}

	if err := h.svc.RemoveBookmark(r.Context(), req.ArticleURL); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove bookmark")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
