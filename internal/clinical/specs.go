package clinical

import "strconv"

type FieldKind string

const (
	KindNumber FieldKind = "number"
	KindSelect FieldKind = "select"
)

// NumericSpec is an inclusive numeric input.
type NumericSpec struct {
	Name    string
	Label   string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

// Option pairs a display label with the code sent to the model.
type Option struct {
	Label string
	Code  int
}

// FieldSpec describes one widget of the clinical section, in display order.
type FieldSpec struct {
	Kind    FieldKind
	Numeric NumericSpec
	Name    string
	Label   string
	Options []Option
}

var (
	ageSpec      = NumericSpec{Name: "age", Label: "Âge (en années)", Min: 1, Max: 120, Default: 30, Step: 1}
	trestbpsSpec = NumericSpec{Name: "trestbps", Label: "Pression artérielle au repos (TRESTBPS) (en mm Hg)", Min: 50, Max: 200, Default: 120, Step: 1}
	cholSpec     = NumericSpec{Name: "chol", Label: "Cholestérol sérique (CHOL) (en mg/dl)", Min: 100, Max: 600, Default: 200, Step: 1}
	thalachSpec  = NumericSpec{Name: "thalach", Label: "Fréquence cardiaque maximale atteinte (THALACH)", Min: 60, Max: 220, Default: 150, Step: 1}
	oldpeakSpec  = NumericSpec{Name: "oldpeak", Label: "Dépression ST induite par l'exercice (OLDPEAK)", Min: 0, Max: 10, Default: 1, Step: 0.1}
	caSpec       = NumericSpec{Name: "ca", Label: "Nombre de vaisseaux principaux colorés par flouroscopie (CA)", Min: 0, Max: 3, Default: 0, Step: 1}

	sexOptions       = []Option{{"Homme", int(Male)}, {"Femme", int(Female)}}
	yesNoOptions     = []Option{{"Oui", int(Yes)}, {"Non", int(No)}}
	chestPainOptions = codeOptions(1, 2, 3, 4)
	restECGOptions   = codeOptions(0, 1, 2)
	slopeOptions     = codeOptions(1, 2, 3)
	thalOptions      = codeOptions(1, 2, 3)
)

func codeOptions(codes ...int) []Option {
	opts := make([]Option, 0, len(codes))
	for _, c := range codes {
		opts = append(opts, Option{Label: strconv.Itoa(c), Code: c})
	}
	return opts
}

func number(s NumericSpec) FieldSpec {
	return FieldSpec{Kind: KindNumber, Numeric: s, Name: s.Name, Label: s.Label}
}

func choice(name, label string, opts []Option) FieldSpec {
	return FieldSpec{Kind: KindSelect, Name: name, Label: label, Options: opts}
}

// FieldSpecs lists the clinical widgets in the order the form shows them.
// This is also the order of FeatureVector.Row.
func FieldSpecs() []FieldSpec {
	return []FieldSpec{
		number(ageSpec),
		choice("sexe", "Sexe", sexOptions),
		choice("cp", "Type de douleur thoracique (CP)", chestPainOptions),
		number(trestbpsSpec),
		number(cholSpec),
		choice("fps", "Glycémie à jeun > 120 mg/dl (FPS)", yesNoOptions),
		choice("restech", "Résultats électrocardiographiques au repos (RESTECH)", restECGOptions),
		number(thalachSpec),
		choice("exang", "Angine induite par l'exercice (EXANG)", yesNoOptions),
		number(oldpeakSpec),
		choice("slope", "Pente du segment ST (SLOPE)", slopeOptions),
		number(caSpec),
		choice("thal", "THAL (1 = normal ; 2 = défaut fixe ; 3 = défaut réversible)", thalOptions),
	}
}

// Value returns the current value of the named field formatted for an
// HTML input, so templates can mark the selected option.
func (v FeatureVector) Value(name string) string {
	switch name {
	case "age":
		return strconv.Itoa(v.Age)
	case "sexe":
		return strconv.Itoa(int(v.Sex))
	case "cp":
		return strconv.Itoa(int(v.CP))
	case "trestbps":
		return strconv.Itoa(v.TrestBPS)
	case "chol":
		return strconv.Itoa(v.Chol)
	case "fps":
		return strconv.Itoa(int(v.FPS))
	case "restech":
		return strconv.Itoa(int(v.RestECG))
	case "thalach":
		return strconv.Itoa(v.Thalach)
	case "exang":
		return strconv.Itoa(int(v.Exang))
	case "oldpeak":
		return strconv.FormatFloat(v.Oldpeak, 'f', -1, 64)
	case "slope":
		return strconv.Itoa(int(v.Slope))
	case "ca":
		return strconv.Itoa(v.CA)
	case "thal":
		return strconv.Itoa(int(v.Thal))
	}
	return ""
}
