package game

// LifeCatalog is the fixed set of life counters shown to players. The labels
// carry no game meaning; slot i is lost once WrongCount passes i.
var LifeCatalog = []string{
	"HTML",
	"CSS",
	"JavaScript",
	"TypeScript",
	"React",
	"Python",
	"Ruby",
	"Go",
}

// MaxWrongGuesses matches the catalog length so the final miss dims the last
// slot and ends the game in the same transition.
var MaxWrongGuesses = len(LifeCatalog)

type Life struct {
	Label string `json:"label"`
	Lost  bool   `json:"lost"`
}

func Lives(s Session) []Life {
	lives := make([]Life, len(LifeCatalog))
	for i, label := range LifeCatalog {
		lives[i] = Life{Label: label, Lost: s.WrongCount > i}
	}
	return lives
}
