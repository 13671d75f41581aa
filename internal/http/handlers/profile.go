package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/linkinbio-be/internal/auth"
	"github.com/hongminglow/linkinbio-be/internal/http/respond"
	"github.com/hongminglow/linkinbio-be/internal/middleware"
	"github.com/hongminglow/linkinbio-be/internal/models/dto"
	"github.com/hongminglow/linkinbio-be/internal/service"
)

// ProfileHandler serves the public profile and the owner's private views.
type ProfileHandler struct {
	editor *service.ProfileEditor
	guard  *auth.Guard
	logger *slog.Logger
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(editor *service.ProfileEditor, guard *auth.Guard, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{editor: editor, guard: guard, logger: logger}
}

// Register attaches profile routes to the mux. Private routes sit behind the
// bearer-token gate.
func (h *ProfileHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handlePublic)
	mux.Handle("GET /dashboard", middleware.RequireAuth(h.guard, http.HandlerFunc(h.handleDashboard)))
	mux.Handle("PUT /edit-profile", middleware.RequireAuth(h.guard, http.HandlerFunc(h.handleEdit)))
}

func (h *ProfileHandler) handlePublic(w http.ResponseWriter, r *http.Request) {
	profile, err := h.editor.PublicProfile(r.Context())
	if err != nil {
		h.profileError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	profile, err := h.editor.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		h.profileError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) handleEdit(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var req dto.EditProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	links := make([]service.LinkInput, 0, len(req.Links))
	for _, l := range req.Links {
		links = append(links, service.LinkInput{Title: l.Title, URL: l.URL})
	}
	err := h.editor.UpdateProfile(r.Context(), identity.UserID, service.ProfileUpdate{
		Name:  req.Name,
		Bio:   req.Bio,
		Links: links,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			respond.Error(w, http.StatusBadRequest, "Name and bio are required")
		case errors.Is(err, service.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "User not found")
		default:
			h.logger.ErrorContext(r.Context(), "update profile failed", "user_id", identity.UserID, "error", err)
			respond.Error(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	respond.JSON(w, http.StatusOK, dto.EditProfileResponse{Success: true, Message: "Profile updated successfully"})
}

func (h *ProfileHandler) profileError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "User not found")
		return
	}
	h.logger.ErrorContext(r.Context(), "fetch profile failed", "path", r.URL.Path, "error", err)
	respond.Error(w, http.StatusInternalServerError, "Failed to fetch data")
}
