// internal/httpserver/routes_game.go
//
// Game endpoints. All of them run behind withIdentity, so guests can play.
//   - POST   /game/new          → start a game (optionally with a fixed answer outside production)
//   - POST   /game/guess        → submit a whole word for a game
//   - GET    /game/{id}         → current view
//   - POST   /game/{id}/letter  → type one letter
//   - DELETE /game/{id}/letter  → delete the last letter
//   - POST   /game/{id}/submit  → submit the typed letters
//   - POST   /game/{id}/restart → start over with a fresh secret

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dejny/wordle/internal/game"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Post("/letter", s.handleAppendLetter)
		r.Delete("/letter", s.handleDeleteLetter)
		r.Post("/submit", s.handleSubmit)
		r.Post("/restart", s.handleRestart)
	})
}

// answerReq is the optional body of /game/new and /game/{id}/restart.
type answerReq struct {
	Answer string `json:"answer" validate:"omitempty,len=5,alpha"`
}

type gameRes struct {
	GameID string    `json:"gameId"`
	Game   game.View `json:"game"`
}

type letterReq struct {
	Letter string `json:"letter" validate:"required,len=1,alpha"`
}

type guessReq struct {
	GameID string `json:"gameId" validate:"required"`
	Guess  string `json:"guess" validate:"required"`
}

type guessRes struct {
	Row  game.Row  `json:"row"`
	Game game.View `json:"game"`
}

// fixedAnswer honours a requested answer only outside production.
func (s *Server) fixedAnswer(req answerReq) string {
	if s.cfg.Production() {
		return ""
	}
	return req.Answer
}

// handleNewGame fetches a secret (unless one is supplied) and creates a session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id, view, err := s.sessions.Start(r.Context(), callerFrom(r), s.fixedAnswer(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, gameRes{GameID: id, Game: view})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := s.sessions.View(r.Context(), id, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameRes{GameID: id, Game: view})
}

func (s *Server) handleAppendLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	view, err := s.sessions.AppendLetter(r.Context(), id, callerFrom(r), rune(req.Letter[0]))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameRes{GameID: id, Game: view})
}

func (s *Server) handleDeleteLetter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := s.sessions.DeleteLetter(r.Context(), id, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameRes{GameID: id, Game: view})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	row, view, err := s.sessions.Submit(r.Context(), id, callerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Row: row, Game: view})
}

// handleGuess applies a whole-word guess in one request.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	row, view, err := s.sessions.Guess(r.Context(), req.GameID, callerFrom(r), req.Guess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Row: row, Game: view})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	view, err := s.sessions.Restart(r.Context(), id, callerFrom(r), s.fixedAnswer(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameRes{GameID: id, Game: view})
}
