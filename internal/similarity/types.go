package similarity

// MaxSimilarity is the similarity of the secret to itself
const MaxSimilarity = 100.0

// Similarity is the oracle's answer for one word
type Similarity struct {
	// Word is the word that was ranked
	Word string

	// Rank is the position of the word when sorted by closeness, 0 for the secret
	Rank int

	// Similarity is the closeness score, decreasing as rank increases
	Similarity float64
}
