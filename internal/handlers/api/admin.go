package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/jpcodeman/partygame/internal/auth"
	datasetService "github.com/jpcodeman/partygame/internal/services/dataset"
	gameService "github.com/jpcodeman/partygame/internal/services/game"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Password == "" {
		writeError(w, r, auth.ErrInvalidPassword)
		return
	}

	token, err := s.auth.Login(req.Password)
	if err != nil {
		hlog.FromRequest(r).Warn().Msg("admin login failed")
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	out, err := s.datasets.ListDatasets(r.Context(), &datasetService.ListDatasetsInput{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDataset(w http.ResponseWriter, r *http.Request) {
	var req datasetService.CreateDatasetInput
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := s.datasets.CreateDataset(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	out, err := s.datasets.GetDataset(r.Context(), &datasetService.GetDatasetInput{DatasetID: chi.URLParam(r, "id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListGamesByDataset(w http.ResponseWriter, r *http.Request) {
	out, err := s.games.ListGamesByDataset(r.Context(), &gameService.ListGamesByDatasetInput{DatasetID: chi.URLParam(r, "id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
