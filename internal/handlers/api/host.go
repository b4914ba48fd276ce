package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	hostService "github.com/jpcodeman/partygame/internal/services/host"
)

type acquireHostRequest struct {
	ExistingKey string `json:"existingKey"`
}

func (s *Server) handleAcquireHost(w http.ResponseWriter, r *http.Request) {
	var req acquireHostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := s.hosts.Acquire(r.Context(), &hostService.AcquireInput{
		GameCode:    chi.URLParam(r, "code"),
		ExistingKey: req.ExistingKey,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type releaseHostRequest struct {
	HostKey string `json:"hostKey"`
}

// handleReleaseHost accepts the key in the body or the X-Host-Key header
func (s *Server) handleReleaseHost(w http.ResponseWriter, r *http.Request) {
	var req releaseHostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.HostKey == "" {
		req.HostKey = r.Header.Get(HostKeyHeader)
	}

	out, err := s.hosts.Release(r.Context(), &hostService.ReleaseInput{
		GameCode: chi.URLParam(r, "code"),
		HostKey:  req.HostKey,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleForceReleaseHost(w http.ResponseWriter, r *http.Request) {
	out, err := s.hosts.ForceRelease(r.Context(), &hostService.ForceReleaseInput{GameCode: chi.URLParam(r, "code")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
