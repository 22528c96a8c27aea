package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// Mock derives a unit-length vector from a hash of the text. Equal text always
// yields an equal vector; no network is involved.
type Mock struct {
	dimension int
}

var _ Embedder = (*Mock)(nil)

func NewMock(dimension int) *Mock {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Mock{dimension: dimension}
}

func (m *Mock) Dimension() int {
	return m.dimension
}

func (m *Mock) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	state := h.Sum64()
	if state == 0 {
		state = 1
	}

	vector := make([]float32, m.dimension)
	var norm float64
	for i := range vector {
		// xorshift64
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		v := float64(state>>11)/float64(1<<53)*2 - 1
		vector[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		return vector, nil
	}
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
	return vector, nil
}
