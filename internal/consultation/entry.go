package consultation

import (
	"strconv"
	"time"

	"github.com/Skufu/GoCardio/internal/clinical"
	"github.com/Skufu/GoCardio/internal/prediction"
)

// TimeLayout is the format of the last log column.
const TimeLayout = "2006-01-02 15:04:05"

// Columns is the log schema. The recorder never writes it; it is kept for
// readers of the file and for the tests.
var Columns = []string{
	"Nom", "Prénom", "Adresse", "Téléphone",
	"Âge", "Sexe", "CP", "TRESTBPS", "CHOL", "FPS", "RESTECH", "THALACH",
	"EXANG", "OLDPEAK", "SLOPE", "CA", "THAL",
	"Résultat", "Date et Heure de consultation",
}

// Entry is one saved consultation.
type Entry struct {
	Patient  clinical.Patient
	Vector   clinical.FeatureVector
	Result   prediction.Result
	RecordAt time.Time
}

// Row encodes e in Columns order. Flags use their display labels rather
// than the codes given to the model.
func (e Entry) Row() []string {
	v := e.Vector
	return []string{
		e.Patient.Name,
		e.Patient.Surname,
		e.Patient.Address,
		e.Patient.Telephone,
		strconv.Itoa(v.Age),
		v.Sex.String(),
		strconv.Itoa(int(v.CP)),
		strconv.Itoa(v.TrestBPS),
		strconv.Itoa(v.Chol),
		v.FPS.String(),
		strconv.Itoa(int(v.RestECG)),
		strconv.Itoa(v.Thalach),
		v.Exang.String(),
		formatFloat(v.Oldpeak),
		strconv.Itoa(int(v.Slope)),
		strconv.Itoa(v.CA),
		strconv.Itoa(int(v.Thal)),
		e.Result.String(),
		e.RecordAt.Format(TimeLayout),
	}
}

// formatFloat always keeps a decimal part: 1 -> "1.0", 2.3 -> "2.3".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}
