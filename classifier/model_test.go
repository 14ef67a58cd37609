package classifier

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phishguard-api/features"
)

func constVector(val float64) features.Vector {
	v := make(features.Vector, features.Len)
	for i := range v {
		v[i] = val
	}
	return v
}

// stump splits on HTTPS (index 7).
const stumpModel = `{
  "kind": "gradient_boosting",
  "n_features": 30,
  "init": 0.0,
  "learning_rate": 1.0,
  "trees": [
    {"nodes": [
      {"feature": 7, "threshold": 0, "left": 1, "right": 2},
      {"left": -1, "right": -1, "value": -2.0},
      {"left": -1, "right": -1, "value": 2.0}
    ]}
  ]
}`

func TestGradientBoostedPredict(t *testing.T) {
	m, err := Parse([]byte(stumpModel))
	require.NoError(t, err)

	legit := constVector(1)
	out, err := m.Predict(legit)
	require.NoError(t, err)
	assert.Equal(t, Legitimate, out.Label)
	assert.InDelta(t, sigmoid(2), out.Probabilities.Legitimate, 1e-9)

	phish := constVector(1)
	phish[7] = -1
	out, err = m.Predict(phish)
	require.NoError(t, err)
	assert.Equal(t, Phishing, out.Label)
	assert.InDelta(t, 1.0, out.Probabilities.Phishing+out.Probabilities.Legitimate, 1e-12)
	assert.Greater(t, out.Probabilities.Phishing, 0.8)
}

func TestLogisticPredict(t *testing.T) {
	weights := make([]float64, features.Len)
	for i := range weights {
		weights[i] = 0.1
	}
	m := NewLogistic(0, weights)

	out, err := m.Predict(constVector(1))
	require.NoError(t, err)
	assert.Equal(t, Legitimate, out.Label)
	assert.InDelta(t, sigmoid(3), out.Probabilities.Legitimate, 1e-9)

	out, err = m.Predict(constVector(-1))
	require.NoError(t, err)
	assert.Equal(t, Phishing, out.Label)
}

func TestPredictRejectsWrongLength(t *testing.T) {
	m, err := Parse([]byte(stumpModel))
	require.NoError(t, err)

	_, err = m.Predict(make(features.Vector, 29))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVectorLength))
}

func TestDecideBoundary(t *testing.T) {
	out := decide(0)
	assert.Equal(t, Legitimate, out.Label)
	assert.Equal(t, 0.5, out.Probabilities.Legitimate)
	assert.False(t, math.IsNaN(decide(-1000).Probabilities.Legitimate))
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"unknown kind", `{"kind":"svm"}`},
		{"no trees", `{"kind":"gradient_boosting","trees":[]}`},
		{"child points backwards", `{"kind":"gradient_boosting","trees":[{"nodes":[{"feature":0,"left":0,"right":0}]}]}`},
		{"feature out of range", `{"kind":"gradient_boosting","n_features":30,"trees":[{"nodes":[{"feature":31,"left":1,"right":2},{"left":-1,"right":-1},{"left":-1,"right":-1}]}]}`},
		{"weight count", `{"kind":"logistic","n_features":30,"weights":[1,2,3]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(stumpModel), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.IsType(t, &GradientBoosted{}, m)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLabelString(t *testing.T) {
	assert.Equal(t, "phishing", Phishing.String())
	assert.Equal(t, "legitimate", Legitimate.String())
}

func TestLabelMarshalText(t *testing.T) {
	b, err := Phishing.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "phishing", string(b))
}

func TestBundledModel(t *testing.T) {
	m, err := Load(filepath.Join("..", "model.json"))
	require.NoError(t, err)

	legit := make(features.Vector, features.Len)
	phish := make(features.Vector, features.Len)
	for i := range legit {
		legit[i] = features.Legit
		phish[i] = features.Phishy
	}

	out, err := m.Predict(legit)
	require.NoError(t, err)
	assert.Equal(t, Legitimate, out.Label)

	out, err = m.Predict(phish)
	require.NoError(t, err)
	assert.Equal(t, Phishing, out.Label)
	assert.InDelta(t, 1, out.Probabilities.Phishing+out.Probabilities.Legitimate, 1e-9)
}
