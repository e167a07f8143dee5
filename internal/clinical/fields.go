package clinical

import (
	"errors"
	"fmt"
)

// NumFeatures is the width of the row the classifier was trained on.
const NumFeatures = 13

var ErrOutOfRange = errors.New("value out of range")

// Sex is encoded Homme=1, Femme=0.
type Sex int

const (
	Female Sex = 0
	Male   Sex = 1
)

func (s Sex) Code() float64 { return float64(s) }

func (s Sex) String() string {
	if s == Male {
		return "Homme"
	}
	return "Femme"
}

// YesNo is used for the FPS and EXANG flags.
type YesNo int

const (
	No  YesNo = 0
	Yes YesNo = 1
)

func (y YesNo) Code() float64 { return float64(y) }

func (y YesNo) String() string {
	if y == Yes {
		return "Oui"
	}
	return "Non"
}

type ChestPain int

const (
	ChestPainTypical ChestPain = iota + 1
	ChestPainAtypical
	ChestPainNonAnginal
	ChestPainAsymptomatic
)

type RestECG int

const (
	RestECGNormal RestECG = iota
	RestECGSTAbnormality
	RestECGHypertrophy
)

type Slope int

const (
	SlopeUp Slope = iota + 1
	SlopeFlat
	SlopeDown
)

type Thal int

const (
	ThalNormal Thal = iota + 1
	ThalFixedDefect
	ThalReversibleDefect
)

// Patient holds the free-text identity fields. None of them is required.
type Patient struct {
	Name      string `form:"nom" json:"nom"`
	Surname   string `form:"prenom" json:"prenom"`
	Address   string `form:"adresse" json:"adresse"`
	Telephone string `form:"telephone" json:"telephone"`
}

// FeatureVector is one set of clinical inputs. Field order in Row is the
// order the model was trained on and must not change.
type FeatureVector struct {
	Age      int
	Sex      Sex
	CP       ChestPain
	TrestBPS int
	Chol     int
	FPS      YesNo
	RestECG  RestECG
	Thalach  int
	Exang    YesNo
	Oldpeak  float64
	Slope    Slope
	CA       int
	Thal     Thal
}

// Row returns the numeric row fed to the classifier.
func (v FeatureVector) Row() []float64 {
	return []float64{
		float64(v.Age),
		v.Sex.Code(),
		float64(v.CP),
		float64(v.TrestBPS),
		float64(v.Chol),
		v.FPS.Code(),
		float64(v.RestECG),
		float64(v.Thalach),
		v.Exang.Code(),
		v.Oldpeak,
		float64(v.Slope),
		float64(v.CA),
		float64(v.Thal),
	}
}

// DefaultVector returns the values the form shows before any input.
func DefaultVector() FeatureVector {
	return FeatureVector{
		Age:      int(ageSpec.Default),
		Sex:      Male,
		CP:       ChestPainTypical,
		TrestBPS: int(trestbpsSpec.Default),
		Chol:     int(cholSpec.Default),
		FPS:      Yes,
		RestECG:  RestECGNormal,
		Thalach:  int(thalachSpec.Default),
		Exang:    Yes,
		Oldpeak:  oldpeakSpec.Default,
		Slope:    SlopeUp,
		CA:       int(caSpec.Default),
		Thal:     ThalNormal,
	}
}

// Validate checks every field against its own widget domain. There are no
// cross-field checks.
func (v FeatureVector) Validate() error {
	numeric := []struct {
		spec  NumericSpec
		value float64
	}{
		{ageSpec, float64(v.Age)},
		{trestbpsSpec, float64(v.TrestBPS)},
		{cholSpec, float64(v.Chol)},
		{thalachSpec, float64(v.Thalach)},
		{oldpeakSpec, v.Oldpeak},
		{caSpec, float64(v.CA)},
	}
	for _, n := range numeric {
		if n.value < n.spec.Min || n.value > n.spec.Max {
			return fmt.Errorf("%s=%v not in [%v, %v]: %w", n.spec.Name, n.value, n.spec.Min, n.spec.Max, ErrOutOfRange)
		}
	}

	choices := []struct {
		name  string
		value int
		opts  []Option
	}{
		{"sexe", int(v.Sex), sexOptions},
		{"cp", int(v.CP), chestPainOptions},
		{"fps", int(v.FPS), yesNoOptions},
		{"restech", int(v.RestECG), restECGOptions},
		{"exang", int(v.Exang), yesNoOptions},
		{"slope", int(v.Slope), slopeOptions},
		{"thal", int(v.Thal), thalOptions},
	}
	for _, c := range choices {
		if !hasCode(c.opts, c.value) {
			return fmt.Errorf("%s=%d is not a listed option: %w", c.name, c.value, ErrOutOfRange)
		}
	}
	return nil
}

func hasCode(opts []Option, code int) bool {
	for _, o := range opts {
		if o.Code == code {
			return true
		}
	}
	return false
}
