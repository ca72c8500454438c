package game

import (
	"slices"
	"strings"
)

// View is the client-facing projection of a session. The target word is only
// present once the game is over; mid-game clients see the masked display.
type View struct {
	Language   Language `json:"language"`
	Display    string   `json:"display"`
	Guessed    []string `json:"guessed_letters"`
	WrongCount int      `json:"wrong_count"`
	LivesLeft  int      `json:"lives_left"`
	Lives      []Life   `json:"lives"`
	Status     Status   `json:"status"`
	Word       string   `json:"word,omitempty"`
}

func ViewOf(s Session) View {
	v := View{
		Language:   s.Language,
		Display:    Display(s),
		Guessed:    GuessedLetters(s),
		WrongCount: s.WrongCount,
		LivesLeft:  max(MaxWrongGuesses-s.WrongCount, 0),
		Lives:      Lives(s),
		Status:     StatusOf(s),
	}
	if IsGameOver(s) {
		v.Word = s.TargetWord
	}
	return v
}

// Display renders the word with unguessed letters masked, e.g. "c a _".
func Display(s Session) string {
	parts := make([]string, 0, len(s.TargetWord))
	for _, r := range s.TargetWord {
		if s.Guessed[r] {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

func GuessedLetters(s Session) []string {
	letters := make([]string, 0, len(s.Guessed))
	for l := range s.Guessed {
		letters = append(letters, string(l))
	}
	slices.Sort(letters)
	return letters
}
