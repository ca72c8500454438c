package game

import (
	"errors"
	"strings"
	"unicode"
)

var ErrGameOver = errors.New("game is over")
var ErrAlreadyGuessed = errors.New("letter already guessed")
var ErrNotALetter = errors.New("guess must be a single letter")

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Session is one in-progress game. Values are immutable from the outside:
// transitions take a Session and return the next one, so callers can hold and
// compare states freely in tests.
type Session struct {
	Language   Language
	TargetWord string // lowercase, diacritics stripped
	Guessed    map[rune]bool
	WrongCount int
	Won        bool
}

func NewSession(lang Language, word string) Session {
	return Session{
		Language:   lang,
		TargetWord: word,
		Guessed:    map[rune]bool{},
	}
}

// Guess applies a single letter to the session. Repeat letters and guesses
// after the game is over leave the state untouched and report why.
func Guess(s Session, letter rune) (Session, error) {
	if IsGameOver(s) {
		return s, ErrGameOver
	}

	letter = unicode.ToLower(letter)
	if !unicode.IsLetter(letter) {
		return s, ErrNotALetter
	}
	if s.Guessed[letter] {
		return s, ErrAlreadyGuessed
	}

	next := s
	next.Guessed = make(map[rune]bool, len(s.Guessed)+1)
	for l := range s.Guessed {
		next.Guessed[l] = true
	}
	next.Guessed[letter] = true

	if !strings.ContainsRune(s.TargetWord, letter) {
		next.WrongCount++
	}

	next.Won = isWin(next)
	return next, nil
}

// Reset discards all guess state and starts over on a fresh word, keeping the
// selected language.
func Reset(s Session, word string) Session {
	return NewSession(s.Language, word)
}

func IsGameOver(s Session) bool {
	return s.Won || s.WrongCount >= MaxWrongGuesses
}

func StatusOf(s Session) Status {
	switch {
	case s.Won:
		return StatusWon
	case s.WrongCount >= MaxWrongGuesses:
		return StatusLost
	default:
		return StatusPlaying
	}
}

func isWin(s Session) bool {
	if s.TargetWord == "" {
		return false
	}
	for _, r := range s.TargetWord {
		if !s.Guessed[r] {
			return false
		}
	}
	return true
}
