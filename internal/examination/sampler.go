package examination

import (
	"errors"
	"math/rand"
	"time"

	"github.com/fikshb/LSPLMS-sub000/internal/question"
)

// ErrInsufficientQuestions is returned when a randomized template asks for
// more questions than the scheme's active bank holds. Creating a short exam
// silently would change what the certificate attests, so this is an error.
var ErrInsufficientQuestions = errors.New("not enough active questions in the bank")

// Sampler draws a without-replacement random selection from a question pool.
// The rand source is injected so tests can assert exact permutations.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

func NewDefaultSampler() *Sampler {
	return NewSampler(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Sample shuffles a copy of the pool (rand.Shuffle is a Fisher–Yates
// permutation, every ordering equally likely) and takes the first n items.
func (s *Sampler) Sample(pool []question.Question, n int) ([]question.Question, error) {
	if n > len(pool) {
		return nil, ErrInsufficientQuestions
	}

	shuffled := make([]question.Question, len(pool))
	copy(shuffled, pool)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:n], nil
}
