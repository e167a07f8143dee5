package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skufu/GoCardio/internal/clinical"
	"github.com/Skufu/GoCardio/internal/session"
)

type Action string

const (
	ActionLoad    Action = "load"
	ActionRefresh Action = "refresh"
	ActionSave    Action = "save"
	ActionConnect Action = "connect"
)

func parseAction(s string) Action {
	switch Action(s) {
	case ActionSave, ActionConnect:
		return Action(s)
	}
	return ActionRefresh
}

// FormState is one snapshot of every widget on the page. The binding tags
// mirror the widget bounds so out-of-domain values never reach the model.
type FormState struct {
	Name      string `form:"nom" json:"nom"`
	Surname   string `form:"prenom" json:"prenom"`
	Address   string `form:"adresse" json:"adresse"`
	Telephone string `form:"telephone" json:"telephone"`

	Age      int     `form:"age" json:"age" binding:"min=1,max=120"`
	Sex      int     `form:"sexe" json:"sexe" binding:"oneof=0 1"`
	CP       int     `form:"cp" json:"cp" binding:"oneof=1 2 3 4"`
	TrestBPS int     `form:"trestbps" json:"trestbps" binding:"min=50,max=200"`
	Chol     int     `form:"chol" json:"chol" binding:"min=100,max=600"`
	FPS      int     `form:"fps" json:"fps" binding:"oneof=0 1"`
	RestECG  int     `form:"restech" json:"restech" binding:"oneof=0 1 2"`
	Thalach  int     `form:"thalach" json:"thalach" binding:"min=60,max=220"`
	Exang    int     `form:"exang" json:"exang" binding:"oneof=0 1"`
	Oldpeak  float64 `form:"oldpeak" json:"oldpeak" binding:"min=0,max=10"`
	Slope    int     `form:"slope" json:"slope" binding:"oneof=1 2 3"`
	CA       int     `form:"ca" json:"ca" binding:"min=0,max=3"`
	Thal     int     `form:"thal" json:"thal" binding:"oneof=1 2 3"`

	ClinicianName     string `form:"cardiologue_nom" json:"-"`
	ClinicianPassword string `form:"cardiologue_mdp" json:"-"`
	Facility          string `form:"structure" json:"-"`

	Action string `form:"action" json:"-"`
}

// DefaultFormState is what the page shows before any input. Binding a
// request on top of it leaves absent fields at their defaults.
func DefaultFormState() FormState {
	var s FormState
	s.setVector(clinical.DefaultVector())
	s.Facility = session.Facilities()[0]
	return s
}

func (s *FormState) setVector(v clinical.FeatureVector) {
	s.Age = v.Age
	s.Sex = int(v.Sex)
	s.CP = int(v.CP)
	s.TrestBPS = v.TrestBPS
	s.Chol = v.Chol
	s.FPS = int(v.FPS)
	s.RestECG = int(v.RestECG)
	s.Thalach = v.Thalach
	s.Exang = int(v.Exang)
	s.Oldpeak = v.Oldpeak
	s.Slope = int(v.Slope)
	s.CA = v.CA
	s.Thal = int(v.Thal)
}

func (s FormState) Vector() clinical.FeatureVector {
	return clinical.FeatureVector{
		Age:      s.Age,
		Sex:      clinical.Sex(s.Sex),
		CP:       clinical.ChestPain(s.CP),
		TrestBPS: s.TrestBPS,
		Chol:     s.Chol,
		FPS:      clinical.YesNo(s.FPS),
		RestECG:  clinical.RestECG(s.RestECG),
		Thalach:  s.Thalach,
		Exang:    clinical.YesNo(s.Exang),
		Oldpeak:  s.Oldpeak,
		Slope:    clinical.Slope(s.Slope),
		CA:       s.CA,
		Thal:     clinical.Thal(s.Thal),
	}
}

func (s FormState) Patient() clinical.Patient {
	return clinical.Patient{
		Name:      s.Name,
		Surname:   s.Surname,
		Address:   s.Address,
		Telephone: s.Telephone,
	}
}

func (s FormState) Credentials() session.Credentials {
	return session.Credentials{
		Name:     s.ClinicianName,
		Password: s.ClinicianPassword,
		Facility: s.Facility,
	}
}

// describeValidation turns binding errors into one message per field.
func describeValidation(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "min":
			out = append(out, fmt.Sprintf("%s must be at least %s", strings.ToLower(fe.Field()), fe.Param()))
		case "max":
			out = append(out, fmt.Sprintf("%s must be at most %s", strings.ToLower(fe.Field()), fe.Param()))
		case "oneof":
			out = append(out, fmt.Sprintf("%s must be one of %s", strings.ToLower(fe.Field()), fe.Param()))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return out
}

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
