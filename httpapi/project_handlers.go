package httpapi

import (
	"fmt"
	"net/http"

	"devroom/auth"
	"devroom/services"

	"github.com/go-chi/chi/v5"
)

// ProjectHandlers exposes project CRUD and membership management. Every
// endpoint requires an authenticated caller; member mutations additionally
// require the caller to be the project creator.
type ProjectHandlers struct {
	projectService services.IProjectService
}

func NewProjectHandlers(projectService services.IProjectService) *ProjectHandlers {
	return &ProjectHandlers{projectService: projectService}
}

type createProjectRequest struct {
	Name string `json:"name"`
}

type addUsersRequest struct {
	ProjectID string   `json:"projectId"`
	UserIDs   []string `json:"userIds"`
}

type removeUserRequest struct {
	ProjectID string `json:"projectId"`
	UserID    string `json:"userId"`
}

func (h *ProjectHandlers) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil || req.Name == "" {
		respondValidation(w, fmt.Errorf("name is required"))
		return
	}

	project, err := h.projectService.Create(req.Name, identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"newProject": project})
}

func (h *ProjectHandlers) ListAll(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	projects, err := h.projectService.ListForUser(identity.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	// The project list backs the lobby view; it must never be served stale.
	w.Header().Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	respondJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *ProjectHandlers) Get(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if projectID == "" {
		respondValidation(w, fmt.Errorf("projectId is required"))
		return
	}

	project, err := h.projectService.Get(projectID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"project": project})
}

func (h *ProjectHandlers) AddUsers(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req addUsersRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, fmt.Errorf("invalid request body"))
		return
	}
	if req.ProjectID == "" || len(req.UserIDs) == 0 {
		respondValidation(w, fmt.Errorf("userIds and projectId are required"))
		return
	}

	project, err := h.projectService.AddUsers(req.ProjectID, identity.UserID, req.UserIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"msg":     "users added to project successfully",
		"project": project,
	})
}

func (h *ProjectHandlers) RemoveUser(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req removeUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, fmt.Errorf("invalid request body"))
		return
	}
	if req.ProjectID == "" || req.UserID == "" {
		respondValidation(w, fmt.Errorf("userId and projectId are required"))
		return
	}

	project, err := h.projectService.RemoveUser(req.ProjectID, identity.UserID, req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"msg":     "user removed from project successfully",
		"project": project,
	})
}
