package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	gameService "github.com/jpcodeman/partygame/internal/services/game"
)

type createGameRequest struct {
	DatasetID string `json:"datasetId"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := s.games.CreateGame(r.Context(), &gameService.CreateGameInput{DatasetID: req.DatasetID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	out, err := s.games.GetGame(r.Context(), &gameService.GetGameInput{GameCode: chi.URLParam(r, "code")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type joinTeamRequest struct {
	TeamName string `json:"teamName"`
}

func (s *Server) handleJoinTeam(w http.ResponseWriter, r *http.Request) {
	var req joinTeamRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := s.games.JoinTeam(r.Context(), &gameService.JoinTeamInput{
		GameCode: chi.URLParam(r, "code"),
		TeamName: req.TeamName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if out.AlreadyJoined {
		status = http.StatusOK
	}
	writeJSON(w, status, out)
}

type submitGuessRequest struct {
	TeamID string          `json:"teamId"`
	Guess  json.RawMessage `json:"guess"`
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	var req submitGuessRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := s.games.SubmitGuess(r.Context(), &gameService.SubmitGuessInput{
		GameCode: chi.URLParam(r, "code"),
		TeamID:   req.TeamID,
		Guess:    req.Guess,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFinalizeRound(w http.ResponseWriter, r *http.Request) {
	out, err := s.games.FinalizeRound(r.Context(), &gameService.FinalizeRoundInput{GameCode: chi.URLParam(r, "code")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAdvanceRound(w http.ResponseWriter, r *http.Request) {
	out, err := s.games.AdvanceRound(r.Context(), &gameService.AdvanceRoundInput{GameCode: chi.URLParam(r, "code")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
