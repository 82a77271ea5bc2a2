package gallery

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by MoveItem for indices outside the sequence.
var ErrIndexOutOfRange = errors.New("index out of range")

// Move is one reorder step: the element at From ends up at To.
type Move struct {
	From, To int
}

func (m Move) Noop() bool { return m.From == m.To }

// MoveItem removes the element at from and reinserts it so that it sits at to
// in the result. Elements in between shift by one. The input is not modified.
func MoveItem[T any](seq []T, from, to int) ([]T, error) {
	n := len(seq)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("move %d -> %d in %d items: %w", from, to, n, ErrIndexOutOfRange)
	}
	out := make([]T, n)
	copy(out, seq)
	if from == to {
		return out, nil
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}
