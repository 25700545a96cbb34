package tetris

import (
	"math/rand/v2"
	"time"
)

// Randomizer chooses the type of each upcoming piece.
type Randomizer interface {
	Next() PieceType
}

// UniformRandomizer draws each piece independently and uniformly from the
// seven types. The same type can come up any number of times in a row.
type UniformRandomizer struct {
	rng *rand.Rand
}

// NewUniformRandomizer returns a uniform randomizer seeded with seed.
func NewUniformRandomizer(seed uint64) *UniformRandomizer {
	return &UniformRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *UniformRandomizer) Next() PieceType {
	return PieceType(r.rng.IntN(PieceCount)) + PieceI
}

// BagRandomizer deals the seven types in shuffled bags of seven. It is an
// opt-in alternative; games use UniformRandomizer unless told otherwise.
type BagRandomizer struct {
	rng *rand.Rand
	bag []PieceType
}

// NewBagRandomizer returns a 7-bag randomizer seeded with seed.
func NewBagRandomizer(seed uint64) *BagRandomizer {
	return &BagRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *BagRandomizer) Next() PieceType {
	if len(r.bag) == 0 {
		r.bag = []PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}
		r.rng.Shuffle(len(r.bag), func(i, j int) {
			r.bag[i], r.bag[j] = r.bag[j], r.bag[i]
		})
	}

	t := r.bag[0]
	r.bag = r.bag[1:]
	return t
}

// QueueRandomizer hands out pushed piece types in order. Once the queue is
// drained it falls back to a uniform draw so a game never stalls.
type QueueRandomizer struct {
	queue    []PieceType
	fallback Randomizer
}

// NewQueueRandomizer returns a queue preloaded with types.
func NewQueueRandomizer(types ...PieceType) *QueueRandomizer {
	q := &QueueRandomizer{fallback: NewUniformRandomizer(uint64(time.Now().UnixNano()))}
	q.Push(types...)
	return q
}

// Push appends types to the queue.
func (q *QueueRandomizer) Push(types ...PieceType) {
	q.queue = append(q.queue, types...)
}

// Len returns the number of queued types.
func (q *QueueRandomizer) Len() int {
	return len(q.queue)
}

func (q *QueueRandomizer) Next() PieceType {
	if len(q.queue) == 0 {
		return q.fallback.Next()
	}
	t := q.queue[0]
	q.queue = q.queue[1:]
	return t
}
