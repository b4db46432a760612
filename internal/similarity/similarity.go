// Package similarity compares frequency vectors by inner product and angle.
//
// All functions expect vectors produced by wordfreq.Order, i.e. strictly
// ascending by word, and walk them with a linear merge-join. Vectors that break
// that ordering are rejected with wordfreq.ErrInvariantViolation.
package similarity

import (
	"errors"
	"fmt"
	"math"

	"docdist/internal/wordfreq"
)

// ErrDegenerateVector reports a comparison involving an empty vector, for which
// the angle is undefined.
var ErrDegenerateVector = errors.New("degenerate frequency vector")

// DegenerateVectorError names the side(s) of a comparison that were empty.
type DegenerateVectorError struct {
	Side string // "a", "b", or "both"
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf("%s: vector %s has no words", ErrDegenerateVector, e.Side)
}

func (e *DegenerateVectorError) Unwrap() error { return ErrDegenerateVector }

// InnerProduct returns the sum of count products over words present in both vectors.
func InnerProduct(a, b wordfreq.Vector) (float64, error) {
	if err := checkOrdered(a, b); err != nil {
		return 0, err
	}
	return dot(a, b), nil
}

// Norm returns the Euclidean length of v.
func Norm(v wordfreq.Vector) (float64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	return math.Sqrt(dot(v, v)), nil
}

// Measurement holds every quantity derived from one comparison of two vectors.
type Measurement struct {
	InnerProduct float64
	Cosine       float64
	Angle        float64
}

// Measure validates a and b once and computes their inner product, cosine,
// and angle.
func Measure(a, b wordfreq.Vector) (Measurement, error) {
	if err := checkDegenerate(a, b); err != nil {
		return Measurement{}, err
	}
	if err := checkOrdered(a, b); err != nil {
		return Measurement{}, err
	}
	ip := dot(a, b)
	c := clampCosine(ip / math.Sqrt(dot(a, a)*dot(b, b)))
	return Measurement{InnerProduct: ip, Cosine: c, Angle: math.Acos(c)}, nil
}

// Cosine returns the normalized inner product of a and b clamped to [-1, 1].
func Cosine(a, b wordfreq.Vector) (float64, error) {
	m, err := Measure(a, b)
	if err != nil {
		return 0, err
	}
	return m.Cosine, nil
}

// Angle returns the angle in radians between a and b, in [0, π/2].
func Angle(a, b wordfreq.Vector) (float64, error) {
	m, err := Measure(a, b)
	if err != nil {
		return 0, err
	}
	return m.Angle, nil
}

// clampCosine keeps c inside the domain of math.Acos. Rounding can push
// proportional vectors just past 1.
func clampCosine(c float64) float64 {
	return max(-1, min(1, c))
}

// dot merge-joins two ordered vectors. Words missing from either side
// contribute nothing.
func dot(a, b wordfreq.Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Word == b[j].Word:
			sum += float64(a[i].Count) * float64(b[j].Count)
			i++
			j++
		case a[i].Word < b[j].Word:
			i++
		default:
			j++
		}
	}
	return sum
}

func checkDegenerate(a, b wordfreq.Vector) error {
	switch {
	case len(a) == 0 && len(b) == 0:
		return &DegenerateVectorError{Side: "both"}
	case len(a) == 0:
		return &DegenerateVectorError{Side: "a"}
	case len(b) == 0:
		return &DegenerateVectorError{Side: "b"}
	}
	return nil
}

func checkOrdered(a, b wordfreq.Vector) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("vector a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("vector b: %w", err)
	}
	return nil
}
