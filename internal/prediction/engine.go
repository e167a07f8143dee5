package prediction

import (
	"errors"
	"fmt"

	"github.com/Skufu/GoCardio/internal/clinical"
)

// Classifier is a single-row-in, single-label-out model.
type Classifier interface {
	Predict(row []float64) (int, error)
	NumFeatures() int
}

type Result int

const (
	DiseaseAbsent Result = iota
	DiseasePresent
)

func (r Result) String() string {
	if r == DiseasePresent {
		return "Maladie cardiaque"
	}
	return "Pas de maladie cardiaque"
}

// Message is the banner text shown under the form.
func (r Result) Message() string {
	return fmt.Sprintf("Le modèle prédit que le patient est atteint de %s.", r)
}

// Engine holds the loaded model for the lifetime of the process.
type Engine struct {
	model Classifier
}

func NewEngine(model Classifier) (*Engine, error) {
	if model == nil {
		return nil, errors.New("nil classifier")
	}
	if n := model.NumFeatures(); n != clinical.NumFeatures {
		return nil, fmt.Errorf("model expects %d features, form provides %d", n, clinical.NumFeatures)
	}
	return &Engine{model: model}, nil
}

// Predict runs the model on v. Label 1 means disease present; every other
// label is treated as absent.
func (e *Engine) Predict(v clinical.FeatureVector) (Result, error) {
	label, err := e.model.Predict(v.Row())
	if err != nil {
		return DiseaseAbsent, fmt.Errorf("predict: %w", err)
	}
	if label == 1 {
		return DiseasePresent, nil
	}
	return DiseaseAbsent, nil
}
