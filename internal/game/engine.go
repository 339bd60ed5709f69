// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Hold the secret, guess history, verdict rows, input buffer and keyboard.
//   - Validate and apply guesses (length, alphabetic, optional dictionary).
//   - Track state transitions: in_progress → won/lost, restart → in_progress.
//
// Notes:
//   - State only changes through AppendLetter, DeleteLetter, SubmitGuess,
//     Guess and Restart. A failed operation leaves the game untouched.
//   - A Game is not safe for concurrent use; callers serialize access.
package game

// Dictionary decides whether a guess is a real word.
type Dictionary interface {
	IsAllowed(word string) bool
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithDictionary rejects guesses that d does not allow.
func WithDictionary(d Dictionary) Option {
	return func(g *Game) { g.dict = d }
}

// Game holds the state of a single Wordle session.
type Game struct {
	secret   string
	guesses  []string
	rows     []Row
	buffer   []byte
	keyboard Keyboard
	status   Status
	dict     Dictionary
}

// New starts a game for secret. The secret is normalized and must be five
// letters a–z.
func New(secret string, opts ...Option) (*Game, error) {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Restart(secret); err != nil {
		return nil, err
	}
	return g, nil
}

// Restart replaces the secret and clears history, buffer and keyboard.
// Valid from any state. An invalid secret leaves the game unchanged.
func (g *Game) Restart(secret string) error {
	secret = Normalize(secret)
	if err := validateWord("secret", secret); err != nil {
		return err
	}
	g.secret = secret
	g.guesses = nil
	g.rows = nil
	g.buffer = g.buffer[:0]
	g.keyboard = Keyboard{}
	g.status = StatusInProgress
	return nil
}

// AppendLetter adds one letter to the input buffer.
func (g *Game) AppendLetter(r rune) error {
	if g.status.Over() {
		return ErrGameOver
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return &InputError{Field: "letter", Value: string(r), Reason: "letters a-z only"}
	}
	if len(g.buffer) >= WordLength {
		return ErrRowFull
	}
	g.buffer = append(g.buffer, byte(r))
	return nil
}

// DeleteLetter removes the last buffered letter. Deleting from an empty
// buffer is a no-op.
func (g *Game) DeleteLetter() error {
	if g.status.Over() {
		return ErrGameOver
	}
	if n := len(g.buffer); n > 0 {
		g.buffer = g.buffer[:n-1]
	}
	return nil
}

// SubmitGuess evaluates the buffered letters as a guess.
//
// Validation rules:
//   - Game must be in progress.
//   - Buffer must hold exactly five letters.
//   - If a Dictionary is configured, it must allow the word.
//
// State transitions:
//   - All tiles exact → won.
//   - Else the MaxGuesses-th guess → lost.
func (g *Game) SubmitGuess() (Row, error) {
	if g.status.Over() {
		return Row{}, ErrGameOver
	}
	guess := string(g.buffer)
	row, err := Evaluate(g.secret, guess)
	if err != nil {
		return Row{}, err
	}
	if g.dict != nil && !g.dict.IsAllowed(guess) {
		return Row{}, ErrNotInWordList
	}

	g.guesses = append(g.guesses, guess)
	g.rows = append(g.rows, row)
	g.keyboard = Fold(g.keyboard, row, guess)
	g.buffer = g.buffer[:0]

	if row.Solved() {
		g.status = StatusWon
	} else if len(g.guesses) >= MaxGuesses {
		g.status = StatusLost
	}
	return row, nil
}

// Guess replaces the buffer with word and submits it in one step.
// On failure the previous buffer is restored.
func (g *Game) Guess(word string) (Row, error) {
	if g.status.Over() {
		return Row{}, ErrGameOver
	}
	word = Normalize(word)
	if err := validateWord("guess", word); err != nil {
		return Row{}, err
	}
	saved := append([]byte(nil), g.buffer...)
	g.buffer = append(g.buffer[:0], word...)
	row, err := g.SubmitGuess()
	if err != nil {
		g.buffer = saved
		return Row{}, err
	}
	return row, nil
}

// Status reports the current session state.
func (g *Game) Status() Status { return g.status }

// Buffer returns the letters typed for the in-progress guess.
func (g *Game) Buffer() string { return string(g.buffer) }

// Keyboard returns a copy of the aggregated letter state.
func (g *Game) Keyboard() Keyboard { return g.keyboard }

// Guesses returns a copy of the submitted guesses.
func (g *Game) Guesses() []string { return append([]string(nil), g.guesses...) }

// Rows returns a copy of the verdict rows, parallel to Guesses.
func (g *Game) Rows() []Row { return append([]Row(nil), g.rows...) }

// Remaining is the number of guesses left before the game is lost.
func (g *Game) Remaining() int {
	if g.status.Over() {
		return 0
	}
	return MaxGuesses - len(g.guesses)
}

// Secret returns the normalized secret word.
func (g *Game) Secret() string { return g.secret }

// View is the client-facing snapshot of a game. Answer is only filled
// once the game is over.
type View struct {
	Status     Status   `json:"status"`
	Guesses    []string `json:"guesses"`
	Rows       []Row    `json:"rows"`
	Buffer     string   `json:"buffer"`
	Keyboard   Keyboard `json:"keyboard"`
	Remaining  int      `json:"remaining"`
	MaxGuesses int      `json:"maxGuesses"`
	Answer     string   `json:"answer,omitempty"`
}

// View builds a snapshot of the current state.
func (g *Game) View() View {
	v := View{
		Status:     g.status,
		Guesses:    g.Guesses(),
		Rows:       g.Rows(),
		Buffer:     g.Buffer(),
		Keyboard:   g.keyboard,
		Remaining:  g.Remaining(),
		MaxGuesses: MaxGuesses,
	}
	if v.Guesses == nil {
		v.Guesses = []string{}
		v.Rows = []Row{}
	}
	if g.status.Over() {
		v.Answer = g.secret
	}
	return v
}
