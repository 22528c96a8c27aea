package postgres

import (
	"strconv"
	"strings"
)

// vectorLiteral renders v in pgvector's text form. Queries cast it with
// $n::text::vector so no vector codec has to be registered on the pool.
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.Grow(len(v) * 10)
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
