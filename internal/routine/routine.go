package routine

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type Pose struct {
	Name            string `json:"name"`
	SanskritName    string `json:"sanskritName,omitempty"`
	DurationSeconds int    `json:"durationSeconds"`
	Instructions    string `json:"instructions,omitempty"`
}

type Routine struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Difficulty      Difficulty `json:"difficulty"`
	DurationMinutes int        `json:"durationMinutes"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	Poses           []Pose     `json:"poses"`
	CreatedAt       time.Time  `json:"createdAt"`
}
