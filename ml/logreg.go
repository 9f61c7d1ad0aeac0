package ml

import (
	"fmt"
	"log"
	"math"
	"sort"

	"gonum.org/v1/gonum/optimize"

	"fakenews-detector/models"
)

// LogisticRegression is a binary L2-regularised logistic regression. Classes
// are kept in sorted order; the decision function is positive for Classes[1].
type LogisticRegression struct {
	C       float64
	MaxIter int

	Classes     [2]models.Label
	Weights     []float64
	Intercept   float64
	NumFeatures int
	Fingerprint uint64
	Iterations  int
	Converged   bool
}

func NewLogisticRegression(c float64, maxIter int) *LogisticRegression {
	return &LogisticRegression{C: c, MaxIter: maxIter}
}

// Fit minimises the logistic loss plus ||w||^2/(2C) with L-BFGS. The intercept
// is not penalised. Hitting the iteration budget is logged, not returned.
func (m *LogisticRegression) Fit(X []SparseVector, y []models.Label, numFeatures int) error {
	if len(X) != len(y) {
		return fmt.Errorf("fit model: %d rows but %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return fmt.Errorf("fit model: no training rows")
	}
	if m.C <= 0 {
		return fmt.Errorf("fit model: C must be positive, got %v", m.C)
	}

	classes, err := binaryClasses(y)
	if err != nil {
		return err
	}
	sign := make([]float64, len(y))
	for i, label := range y {
		if label == classes[1] {
			sign[i] = 1
		} else {
			sign[i] = -1
		}
	}

	invC := 1 / m.C
	// x = [w_0 .. w_{d-1}, b]
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			w, b := x[:numFeatures], x[numFeatures]
			var loss float64
			for i, row := range X {
				loss += logLoss(sign[i] * (row.Dot(w) + b))
			}
			var reg float64
			for _, wj := range w {
				reg += wj * wj
			}
			return loss + 0.5*invC*reg
		},
		Grad: func(grad, x []float64) {
			w, b := x[:numFeatures], x[numFeatures]
			for j := range grad {
				grad[j] = 0
			}
			for i, row := range X {
				// d/dz log(1+exp(-s z)) = -s * sigmoid(-s z)
				g := -sign[i] * sigmoid(-sign[i]*(row.Dot(w)+b))
				for k, idx := range row.Indices {
					if idx < numFeatures {
						grad[idx] += g * row.Values[k]
					}
				}
				grad[numFeatures] += g
			}
			for j := 0; j < numFeatures; j++ {
				grad[j] += invC * w[j]
			}
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   m.MaxIter,
		GradientThreshold: 1e-4,
	}
	init := make([]float64, numFeatures+1)
	result, err := optimize.Minimize(problem, init, settings, &optimize.LBFGS{})
	if result == nil {
		return fmt.Errorf("fit model: %w", err)
	}
	if err != nil {
		log.Printf("[MODEL] ⚠ optimizer stopped early: %v", err)
	}

	m.Classes = classes
	m.NumFeatures = numFeatures
	m.Weights = append([]float64(nil), result.X[:numFeatures]...)
	m.Intercept = result.X[numFeatures]
	m.Iterations = result.Stats.MajorIterations
	m.Converged = result.Status == optimize.GradientThreshold || result.Status == optimize.FunctionConvergence
	if !m.Converged {
		log.Printf("[MODEL] ⚠ no convergence after %d iterations (status %v)", m.Iterations, result.Status)
	}
	return nil
}

func (m *LogisticRegression) Fitted() bool {
	return m.NumFeatures > 0 && len(m.Weights) == m.NumFeatures
}

func (m *LogisticRegression) DecisionFunction(x SparseVector) float64 {
	return x.Dot(m.Weights) + m.Intercept
}

// PredictProba returns, per row, the probability of Classes[0] and Classes[1].
func (m *LogisticRegression) PredictProba(X []SparseVector) ([][2]float64, error) {
	if !m.Fitted() {
		return nil, ErrNotFitted
	}
	out := make([][2]float64, len(X))
	for i, row := range X {
		p := sigmoid(m.DecisionFunction(row))
		out[i] = [2]float64{1 - p, p}
	}
	return out, nil
}

func (m *LogisticRegression) Predict(X []SparseVector) ([]models.Label, error) {
	if !m.Fitted() {
		return nil, ErrNotFitted
	}
	out := make([]models.Label, len(X))
	for i, row := range X {
		if m.DecisionFunction(row) > 0 {
			out[i] = m.Classes[1]
		} else {
			out[i] = m.Classes[0]
		}
	}
	return out, nil
}

// Score is the mean accuracy on the given rows.
func (m *LogisticRegression) Score(X []SparseVector, y []models.Label) (float64, error) {
	if len(X) != len(y) {
		return 0, fmt.Errorf("score: %d rows but %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return 0, fmt.Errorf("score: no rows")
	}
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	var hits int
	for i := range pred {
		if pred[i] == y[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(y)), nil
}

func binaryClasses(y []models.Label) ([2]models.Label, error) {
	seen := make(map[models.Label]struct{})
	for _, label := range y {
		seen[label] = struct{}{}
	}
	if len(seen) != 2 {
		return [2]models.Label{}, fmt.Errorf("fit model: need exactly 2 classes, got %d", len(seen))
	}
	labels := make([]string, 0, 2)
	for label := range seen {
		labels = append(labels, string(label))
	}
	sort.Strings(labels)
	return [2]models.Label{models.Label(labels[0]), models.Label(labels[1])}, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logLoss is log(1+exp(-m)) computed without overflow.
func logLoss(margin float64) float64 {
	if margin > 0 {
		return math.Log1p(math.Exp(-margin))
	}
	return -margin + math.Log1p(math.Exp(margin))
}
