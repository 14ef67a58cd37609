// Package classifier runs the pre-trained phishing model over feature vectors.
package classifier

import (
	"errors"
	"fmt"
	"math"

	"phishguard-api/features"
)

// Label is the class the model assigns to a URL.
type Label int

const (
	Phishing   Label = -1
	Legitimate Label = 1
)

func (l Label) String() string {
	switch l {
	case Phishing:
		return "phishing"
	case Legitimate:
		return "legitimate"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Probabilities holds class membership; the two values sum to 1.
type Probabilities struct {
	Phishing   float64 `json:"phishing"`
	Legitimate float64 `json:"legitimate"`
}

// Output is one model decision.
type Output struct {
	Label         Label         `json:"label"`
	Probabilities Probabilities `json:"probabilities"`
}

// ErrVectorLength is returned for vectors the model was not trained on.
var ErrVectorLength = errors.New("feature vector length mismatch")

// Model maps a feature vector to a decision.
type Model interface {
	Predict(v features.Vector) (Output, error)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// decide turns a raw decision score (log-odds of the legitimate class) into an Output.
func decide(score float64) Output {
	pLegit := sigmoid(score)
	out := Output{
		Label: Phishing,
		Probabilities: Probabilities{
			Phishing:   1 - pLegit,
			Legitimate: pLegit,
		},
	}
	if pLegit >= 0.5 {
		out.Label = Legitimate
	}
	return out
}

func checkLen(v features.Vector, n int) error {
	if len(v) != n {
		return fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(v), n)
	}
	return nil
}
