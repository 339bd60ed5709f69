package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"

	"github.com/dejny/wordle/internal/auth"
	"github.com/dejny/wordle/internal/game"
	"github.com/dejny/wordle/internal/session"
	"github.com/dejny/wordle/internal/wordsource"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into dst and validates it. An empty body is
// treated as "{}" so optional payloads can be omitted.
func decode(r *http.Request, dst any) error {
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return &requestError{code: "bad_json", msg: err.Error()}
		}
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			return &requestError{code: "invalid_request", msg: strings.Join(msgs, "; ")}
		}
		return err
	}
	return nil
}

// requestError is a malformed or invalid request payload.
type requestError struct {
	code string
	msg  string
}

func (e *requestError) Error() string { return e.code + ": " + e.msg }

// writeError maps domain errors to status codes and error bodies.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	var inErr *game.InputError
	var valErr *auth.ValidationError

	switch {
	case errors.As(err, &reqErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: reqErr.code, Message: reqErr.msg})
	case errors.As(err, &inErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_input", Message: inErr.Error()})
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_input", Message: valErr.Error()})
	case errors.Is(err, game.ErrNotInWordList):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "not_in_word_list", Message: err.Error()})
	case errors.Is(err, game.ErrGameOver):
		writeJSON(w, http.StatusConflict, errorBody{Error: "game_over", Message: err.Error()})
	case errors.Is(err, game.ErrRowFull):
		writeJSON(w, http.StatusConflict, errorBody{Error: "row_full", Message: err.Error()})
	case session.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found"})
	case errors.Is(err, wordsource.ErrNoWord):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "no_word", Message: "no playable word available"})
	case errors.Is(err, auth.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, errorBody{Error: "username_taken", Message: "Username taken"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid_credentials", Message: "Invalid username or password"})
	case errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal"})
	}
}
