package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNotFound         GameError = "word not in vocabulary"
	ErrAlreadyWon       GameError = "user already found the secret"
	ErrTransientOracle  GameError = "similarity lookup failed, try again"
	ErrStorageConflict  GameError = "concurrent update detected, try again"
	ErrGameNotFound     GameError = "game not found"
	ErrGameNotActive    GameError = "game is no longer active"
	ErrEmptyGuess       GameError = "guess cannot be empty"
	ErrInvalidInput     GameError = "invalid input"
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilGameRepo      GameError = "game repository cannot be nil"
	ErrNilLedgerRepo    GameError = "guess ledger repository cannot be nil"
	ErrNilOracle        GameError = "similarity oracle cannot be nil"
	ErrNilPicker        GameError = "secret picker cannot be nil"
	ErrNilEvaluator     GameError = "milestone evaluator cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
)
