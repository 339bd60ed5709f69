package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dejny/wordle/assets"
	"github.com/dejny/wordle/internal/auth"
	"github.com/dejny/wordle/internal/config"
	"github.com/dejny/wordle/internal/game"
	"github.com/dejny/wordle/internal/session"
	"github.com/dejny/wordle/internal/sqlitedb"
	"github.com/dejny/wordle/internal/store"
	"github.com/dejny/wordle/internal/words"
	"github.com/dejny/wordle/internal/wordsource"
)

// testClient keeps cookies between requests like a browser would.
type testClient struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type viewRes struct {
	GameID string `json:"gameId"`
	Game   struct {
		Status    game.Status             `json:"status"`
		Guesses   []string                `json:"guesses"`
		Rows      [][]game.Verdict        `json:"rows"`
		Buffer    string                  `json:"buffer"`
		Keyboard  map[string]game.Verdict `json:"keyboard"`
		Remaining int                     `json:"remaining"`
		Answer    string                  `json:"answer"`
	} `json:"game"`
	Row []game.Verdict `json:"row"`
}

func newTestServer(t *testing.T, src wordsource.Source) (*Server, *config.Config) {
	t.Helper()
	db, err := sqlitedb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlitedb.Migrate(context.Background(), db, assets.Migrations()))

	lx, err := words.Load("", "")
	require.NoError(t, err)
	st, err := store.NewMemoryStore(100)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:          "test",
		ClientOrigin: "http://localhost:5173",
		CookieName:   "wordle_token",
	}
	srv := New(Deps{
		Config:   cfg,
		Sessions: session.NewManager(st, src, lx),
		Users:    auth.NewService(db, "test-secret", time.Hour),
		Lexicon:  lx,
		Source:   src,
	})
	return srv, cfg
}

func newClient(t *testing.T, srv *Server) *testClient {
	return &testClient{t: t, h: srv.Handler(), cookies: map[string]*http.Cookie{}}
}

func fixed(word string) wordsource.Source {
	return wordsource.Func(func(ctx context.Context) (string, error) { return word, nil })
}

var failing = wordsource.Func(func(ctx context.Context) (string, error) {
	return "", &wordsource.FetchError{Source: "test", Err: errors.New("down")}
})

func TestHealthAndDiagnostics(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	c := newClient(t, srv)

	rec := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = c.do(http.MethodGet, "/debug/words", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	counts := decodeBody[map[string]int](t, rec)
	assert.Greater(t, counts["answers"], 0)

	rec = c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetWord(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	rec := newClient(t, srv).do(http.MethodGet, "/api/get-word", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"word":"crane"}`, rec.Body.String())

	srv, _ = newTestServer(t, failing)
	rec = newClient(t, srv).do(http.MethodGet, "/api/get-word", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No word found"}`, rec.Body.String())
}

func TestGame_TypeAndSubmit(t *testing.T) {
	srv, _ := newTestServer(t, fixed("speed"))
	c := newClient(t, srv)

	rec := c.do(http.MethodPost, "/game/new", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[viewRes](t, rec)
	require.NotEmpty(t, created.GameID)
	assert.Equal(t, game.StatusInProgress, created.Game.Status)
	assert.Empty(t, created.Game.Answer)
	base := "/game/" + created.GameID

	for _, l := range []string{"E", "r", "a", "s", "e"} {
		rec = c.do(http.MethodPost, base+"/letter", map[string]string{"letter": l})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec = c.do(http.MethodPost, base+"/letter", map[string]string{"letter": "x"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[viewRes](t, rec)
	assert.Equal(t, []game.Verdict{game.VerdictPresent, game.VerdictAbsent, game.VerdictAbsent, game.VerdictPresent, game.VerdictPresent}, res.Row)
	assert.Equal(t, []string{"erase"}, res.Game.Guesses)
	assert.Equal(t, game.VerdictPresent, res.Game.Keyboard["e"])
	assert.Equal(t, game.VerdictAbsent, res.Game.Keyboard["r"])
	assert.Equal(t, 5, res.Game.Remaining)
	assert.Equal(t, "", res.Game.Buffer)

	rec = c.do(http.MethodPost, base+"/letter", map[string]string{"letter": "s"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodDelete, base+"/letter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", decodeBody[viewRes](t, rec).Game.Buffer)

	rec = c.do(http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[viewRes](t, rec).Game.Rows, 1)
}

func TestGame_InvalidInput(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	c := newClient(t, srv)
	id := decodeBody[viewRes](t, c.do(http.MethodPost, "/game/new", nil)).GameID

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"too short", map[string]string{"gameId": id, "guess": "cran"}, http.StatusBadRequest, "invalid_input"},
		{"digits", map[string]string{"gameId": id, "guess": "cr4ne"}, http.StatusBadRequest, "invalid_input"},
		{"missing guess", map[string]string{"gameId": id}, http.StatusBadRequest, "invalid_request"},
		{"not a word", map[string]string{"gameId": id, "guess": "qqqqq"}, http.StatusUnprocessableEntity, "not_in_word_list"},
		{"unknown game", map[string]string{"gameId": "nope", "guess": "slate"}, http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.do(http.MethodPost, "/game/guess", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decodeBody[errorBody](t, rec).Error)
		})
	}

	rec := c.do(http.MethodPost, "/game/"+id+"/letter", map[string]string{"letter": "ab"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// None of the rejected submissions changed the game.
	v := decodeBody[viewRes](t, c.do(http.MethodGet, "/game/"+id, nil))
	assert.Empty(t, v.Game.Guesses)
	assert.Equal(t, 6, v.Game.Remaining)
}

func TestGame_LoseAfterSixAndRejectSeventh(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	c := newClient(t, srv)
	id := decodeBody[viewRes](t, c.do(http.MethodPost, "/game/new", nil)).GameID

	var last viewRes
	for _, w := range []string{"slate", "bolts", "house", "audio", "ghost", "plant"} {
		rec := c.do(http.MethodPost, "/game/guess", map[string]string{"gameId": id, "guess": w})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		last = decodeBody[viewRes](t, rec)
	}
	assert.Equal(t, game.StatusLost, last.Game.Status)
	assert.Equal(t, "crane", last.Game.Answer)

	rec := c.do(http.MethodPost, "/game/guess", map[string]string{"gameId": id, "guess": "crane"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "game_over", decodeBody[errorBody](t, rec).Error)
}

func TestGame_WinAndRestart(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	c := newClient(t, srv)

	rec := c.do(http.MethodPost, "/game/new", map[string]string{"answer": "slate"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[viewRes](t, rec).GameID

	rec = c.do(http.MethodPost, "/game/guess", map[string]string{"gameId": id, "guess": "SLATE"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.StatusWon, decodeBody[viewRes](t, rec).Game.Status)

	rec = c.do(http.MethodPost, "/game/"+id+"/restart", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v := decodeBody[viewRes](t, rec)
	assert.Equal(t, game.StatusInProgress, v.Game.Status)
	assert.Empty(t, v.Game.Guesses)

	rec = c.do(http.MethodPost, "/game/guess", map[string]string{"gameId": id, "guess": "crane"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.StatusWon, decodeBody[viewRes](t, rec).Game.Status)
}

func TestGame_FixedAnswerIgnoredInProduction(t *testing.T) {
	srv, cfg := newTestServer(t, fixed("crane"))
	cfg.Env = "production"
	c := newClient(t, srv)

	rec := c.do(http.MethodPost, "/game/new", map[string]string{"answer": "slate"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[viewRes](t, rec).GameID

	rec = c.do(http.MethodPost, "/game/guess", map[string]string{"gameId": id, "guess": "crane"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.StatusWon, decodeBody[viewRes](t, rec).Game.Status)
}

func TestGame_NoWordAvailable(t *testing.T) {
	srv, _ := newTestServer(t, failing)
	rec := newClient(t, srv).do(http.MethodPost, "/game/new", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "no_word", decodeBody[errorBody](t, rec).Error)
}

func TestGame_OtherPlayersCannotTouchGame(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	alice, mallory := newClient(t, srv), newClient(t, srv)
	id := decodeBody[viewRes](t, alice.do(http.MethodPost, "/game/new", nil)).GameID

	rec := mallory.do(http.MethodGet, "/game/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = mallory.do(http.MethodPost, "/game/guess", map[string]string{"gameId": id, "guess": "crane"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = alice.do(http.MethodGet, "/game/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	c := newClient(t, srv)

	rec := c.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A guest game started before signing up stays playable afterwards.
	guestGame := decodeBody[viewRes](t, c.do(http.MethodPost, "/game/new", nil)).GameID

	creds := map[string]string{"username": "alice", "password": "password123"}
	rec = c.do(http.MethodPost, "/auth/signup", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Contains(t, c.cookies, "wordle_token")

	rec = c.do(http.MethodPost, "/auth/signup", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decodeBody[auth.User](t, rec).Username)

	rec = c.do(http.MethodGet, "/game/"+guestGame, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/auth/login", map[string]string{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = c.do(http.MethodPost, "/auth/login", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	// Bearer tokens work without cookies.
	tok := c.cookies["wordle_token"].Value
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	out := httptest.NewRecorder()
	srv.Handler().ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestAuth_Validation(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	c := newClient(t, srv)

	rec := c.do(http.MethodPost, "/auth/signup", map[string]string{"username": "al", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = c.do(http.MethodPost, "/auth/signup", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeBody[errorBody](t, rec).Error)
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t, fixed("crane"))
	req := httptest.NewRequest(http.MethodOptions, "/game/new", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
