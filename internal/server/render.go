package server

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/Skufu/GoCardio/internal/clinical"
	"github.com/Skufu/GoCardio/internal/consultation"
	"github.com/Skufu/GoCardio/internal/prediction"
	"github.com/Skufu/GoCardio/internal/session"
)

type Predictor interface {
	Predict(v clinical.FeatureVector) (prediction.Result, error)
}

type Saver interface {
	Save(ctx context.Context, p clinical.Patient, v clinical.FeatureVector, r prediction.Result) (consultation.Entry, error)
}

// App is built once at startup and shared by every request. Nothing in it
// is mutated after construction.
type App struct {
	predictor     Predictor
	saver         Saver
	logger        *zap.Logger
	predictOnLoad bool
}

func NewApp(predictor Predictor, saver Saver, logger *zap.Logger, predictOnLoad bool) *App {
	return &App{
		predictor:     predictor,
		saver:         saver,
		logger:        logger,
		predictOnLoad: predictOnLoad,
	}
}

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

type Banner struct {
	Kind BannerKind
	Text string
}

type OptionView struct {
	Label    string
	Value    string
	Selected bool
}

type FieldView struct {
	clinical.FieldSpec
	Value   string
	Min     string
	Max     string
	Step    string
	Choices []OptionView
}

// View is everything the page template needs.
type View struct {
	State      FormState
	Fields     []FieldView
	Facilities []OptionView
	Prediction *prediction.Result
	Banners    []Banner
	Sidebar    *Banner
}

func (v *View) fail(text string) {
	v.Banners = append(v.Banners, Banner{Kind: BannerError, Text: text})
}

func (v *View) ok(text string) {
	v.Banners = append(v.Banners, Banner{Kind: BannerSuccess, Text: text})
}

// Render derives the whole page from one form snapshot. It predicts on every
// call except the initial load (unless predictOnLoad is set), saves only for
// ActionSave and checks the sidebar only for ActionConnect.
func (a *App) Render(ctx context.Context, state FormState, action Action) View {
	vector := state.Vector()
	view := baseView(state)

	if action == ActionConnect {
		view.Sidebar = a.connect(state.Credentials())
	}

	if action == ActionLoad && !a.predictOnLoad {
		return view
	}

	if err := vector.Validate(); err != nil {
		view.fail(err.Error())
		return view
	}

	result, err := a.predictor.Predict(vector)
	if err != nil {
		a.logger.Error("prediction failed", zap.Error(err))
		view.fail("Erreur lors de la prédiction : " + err.Error())
		return view
	}
	view.Prediction = &result
	view.ok(result.Message())

	if action == ActionSave {
		if _, err := a.saver.Save(ctx, state.Patient(), vector, result); err != nil {
			view.fail("Erreur lors de l'enregistrement de la consultation : " + err.Error())
		} else {
			view.ok(consultation.SavedMessage)
		}
	}
	return view
}

func (a *App) connect(creds session.Credentials) *Banner {
	st := session.Connect(creds)
	kind := BannerError
	if st.OK {
		kind = BannerSuccess
	}
	a.logger.Info("clinician connect", zap.Bool("ok", st.OK), zap.String("facility", st.Facility))
	return &Banner{Kind: kind, Text: st.Message}
}

// baseView shows state without predicting. The password is never echoed.
func baseView(state FormState) View {
	state.Facility = session.NormalizeFacility(state.Facility)
	state.ClinicianPassword = ""
	state.Action = ""
	return View{
		State:      state,
		Fields:     fieldViews(state.Vector()),
		Facilities: facilityViews(state.Facility),
	}
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func fieldViews(v clinical.FeatureVector) []FieldView {
	specs := clinical.FieldSpecs()
	out := make([]FieldView, 0, len(specs))
	for _, s := range specs {
		fv := FieldView{FieldSpec: s, Value: v.Value(s.Name)}
		if s.Kind == clinical.KindNumber {
			fv.Min = formatNum(s.Numeric.Min)
			fv.Max = formatNum(s.Numeric.Max)
			fv.Step = formatNum(s.Numeric.Step)
		}
		for _, o := range s.Options {
			code := strconv.Itoa(o.Code)
			fv.Choices = append(fv.Choices, OptionView{Label: o.Label, Value: code, Selected: code == fv.Value})
		}
		out = append(out, fv)
	}
	return out
}

func facilityViews(selected string) []OptionView {
	list := session.Facilities()
	out := make([]OptionView, 0, len(list))
	for _, f := range list {
		out = append(out, OptionView{Label: f, Value: f, Selected: f == selected})
	}
	return out
}
