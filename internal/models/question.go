package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Example is a single input/output pair illustrating a question.
type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Question is a static catalog entry. The catalog is read-only at
// matchmaking time; entries are seeded out-of-band and keyed by slug.
type Question struct {
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags"`
	Statement  string     `json:"statement"`
	Examples   []Example  `json:"examples"`
}
