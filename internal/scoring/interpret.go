package scoring

import (
	"errors"
	"regexp"
	"strconv"
)

// numberPattern matches the first signed decimal in a backend reply.
var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// Interpreter turns a free-form backend reply into a score. The reply
// is scanned left to right and the first number wins, whatever follows
// it; values outside [Low, High] are clamped to the nearest bound.
type Interpreter struct {
	Low  float64
	High float64
}

// Interpret extracts the score from a reply. It returns nil when the
// reply contains no number at all; that is a terminal result, not a
// fault to retry.
func (i Interpreter) Interpret(reply string) *float64 {
	m := numberPattern.FindString(reply)
	if m == "" {
		return nil
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil
	}

	v = max(i.Low, min(i.High, v))
	return &v
}
