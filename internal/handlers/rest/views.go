package rest

import (
	"time"

	"github.com/KirkDiggler/similarium/internal/models"
	"github.com/KirkDiggler/similarium/internal/services/game"
)

type gameView struct {
	ID           string            `json:"id"`
	ChannelID    string            `json:"channel_id"`
	PuzzleNumber int               `json:"puzzle_number"`
	Status       models.GameStatus `json:"status"`
	Secret       string            `json:"secret,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	EndedAt      *time.Time        `json:"ended_at,omitempty"`
}

// newGameView renders a game; the secret is only shown once it ended
func newGameView(g *models.Game) *gameView {
	if g == nil {
		return nil
	}

	view := &gameView{
		ID:           g.ID,
		ChannelID:    g.ChannelID,
		PuzzleNumber: g.PuzzleNumber,
		Status:       g.Status,
		CreatedAt:    g.CreatedAt,
		EndedAt:      g.EndedAt,
	}
	if !g.IsActive() {
		view.Secret = g.Secret
	}
	return view
}

type guessView struct {
	Word       string    `json:"word"`
	Rank       int       `json:"rank"`
	Similarity float64   `json:"similarity"`
	Sequence   int       `json:"sequence"`
	UserID     string    `json:"user_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newGuessView(g *models.Guess, maskSecret bool) *guessView {
	if g == nil {
		return nil
	}

	word := g.Word
	if maskSecret && g.IsSecret() {
		word = maskedWord
	}

	return &guessView{
		Word:       word,
		Rank:       g.Rank,
		Similarity: g.Similarity,
		Sequence:   g.Sequence,
		UserID:     g.UserID,
		UpdatedAt:  g.UpdatedAt,
	}
}

func newGuessViews(guesses []*models.Guess, maskSecret bool) []*guessView {
	views := make([]*guessView, 0, len(guesses))
	for _, g := range guesses {
		views = append(views, newGuessView(g, maskSecret))
	}
	return views
}

type summaryView struct {
	Game       *gameView        `json:"game"`
	GuessCount int              `json:"guess_count"`
	TopRank    *int             `json:"top_rank,omitempty"`
	Top        []*guessView     `json:"top"`
	Latest     []*guessView     `json:"latest"`
	Winners    []*models.Winner `json:"winners"`
}

func newSummaryView(s *game.GetGameSummaryOutput) *summaryView {
	mask := s.Game.IsActive()

	view := &summaryView{
		Game:       newGameView(s.Game),
		GuessCount: s.GuessCount,
		Top:        newGuessViews(s.Top, mask),
		Latest:     newGuessViews(s.Latest, mask),
		Winners:    s.Winners,
	}
	if s.HasGuesses {
		rank := s.TopRank
		view.TopRank = &rank
	}
	if view.Winners == nil {
		view.Winners = []*models.Winner{}
	}
	return view
}
