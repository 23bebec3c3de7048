// Package quiz scores the sorting ceremony: each answer favors one house,
// the house with the most points wins, and ties break on a seeded draw.
package quiz

import (
	"errors"
	"fmt"

	"github.com/mirren/spellbound/engine/rng"
	"github.com/mirren/spellbound/types"
)

// ErrQuizDone is returned by Answer once every question has been answered.
var ErrQuizDone = errors.New("quiz already complete")

// Quiz walks the player through the sorting questions one at a time.
type Quiz struct {
	questions []types.QuestionDef
	tally     map[string]int
	pos       int
}

// New creates a quiz over the given questions.
func New(questions []types.QuestionDef) *Quiz {
	return &Quiz{
		questions: questions,
		tally:     map[string]int{},
	}
}

// Current returns the question awaiting an answer.
// ok is false once the quiz is complete.
func (q *Quiz) Current() (types.QuestionDef, bool) {
	if q.pos >= len(q.questions) {
		return types.QuestionDef{}, false
	}
	return q.questions[q.pos], true
}

// Answer records the chosen answer index for the current question and
// advances. Out-of-range choices are rejected without advancing.
func (q *Quiz) Answer(choice int) error {
	cur, ok := q.Current()
	if !ok {
		return ErrQuizDone
	}
	if choice < 0 || choice >= len(cur.Answers) {
		return fmt.Errorf("choice %d out of range", choice)
	}
	q.tally[cur.Answers[choice].House]++
	q.pos++
	return nil
}

// Done reports whether every question has been answered.
func (q *Quiz) Done() bool {
	return q.pos >= len(q.questions)
}

// Sorted returns the winning house ID. Ties break on a uniform draw among
// the leaders, in tally-stable order so a fixed seed reproduces the sort.
func (q *Quiz) Sorted(r *rng.RNG) string {
	best := -1
	var leaders []string

	// Walk questions (not the map) so candidate order is deterministic.
	seen := map[string]bool{}
	for _, question := range q.questions {
		for _, a := range question.Answers {
			if seen[a.House] {
				continue
			}
			seen[a.House] = true
			points := q.tally[a.House]
			switch {
			case points > best:
				best = points
				leaders = []string{a.House}
			case points == best:
				leaders = append(leaders, a.House)
			}
		}
	}

	if len(leaders) == 0 {
		return ""
	}
	return leaders[r.Intn(len(leaders))]
}
