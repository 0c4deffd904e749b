package adapthttp

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"portfolio/internal/domain"
	"portfolio/internal/upload"
)

// maxMultipartMemory bounds how much of a project write is buffered in
// memory before spilling to temp files.
const maxMultipartMemory = 32 << 20

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	listing, err := s.projects.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	user := userFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"projects":     listing.Projects,
		"exchangeRate": listing.ExchangeRate,
		"activity":     listing.Activity,
		"userEmail":    user.Email,
	})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, domain.ErrNotFound)
		return
	}

	session := sessionFrom(r.Context())
	project, err := s.projects.Get(r.Context(), id, session.Language)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"project": project})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	title, description, files, err := parseProjectForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, err := s.projects.Create(r.Context(), title, description, files); err != nil {
		writeError(w, uploadStatus(err), err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, domain.ErrNotFound)
		return
	}

	title, description, files, err := parseProjectForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, err := s.projects.Update(r.Context(), id, title, description, files); err != nil {
		writeError(w, uploadStatus(err), err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, domain.ErrNotFound)
		return
	}

	err = s.projects.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func parseProjectForm(r *http.Request) (title, description string, files []*multipart.FileHeader, err error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return "", "", nil, err
	}
	title = r.FormValue("title")
	description = r.FormValue("description")
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["files"]
	}
	return title, description, files, nil
}

// uploadStatus maps a project-write error to its HTTP status: 413 for a
// disallowed extension, 404 for a missing record, 500 for everything else
// (including size-cap and unknown upload errors).
func uploadStatus(err error) int {
	switch {
	case errors.Is(err, upload.ErrUnsupportedExtension):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
