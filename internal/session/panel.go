// Package session implements the clinician sidebar. The connect check only
// looks for non-empty fields; nothing is verified against stored accounts.
package session

const (
	ConnectedMessage = "Connexion réussie!"
	MissingMessage   = "Veuillez entrer le nom et le mot de passe du cardiologue."
)

var facilities = []string{
	"Hôpital Principal de Dakar",
	"Clinique la Croix Bleue Castors",
	"Centre Médical Mame Abdoul Aziz Parcelles Assainies",
	"Hôpital Matlabul Fawzeyni Touba",
	"Centre de Santé CHIIFA Parcelles Assainies",
}

// Facilities returns a copy of the selectable health facilities.
func Facilities() []string {
	out := make([]string, len(facilities))
	copy(out, facilities)
	return out
}

// NormalizeFacility maps anything outside the list to the first entry.
func NormalizeFacility(name string) string {
	for _, f := range facilities {
		if f == name {
			return f
		}
	}
	return facilities[0]
}

type Credentials struct {
	Name     string `form:"cardiologue_nom" json:"name"`
	Password string `form:"cardiologue_mdp" json:"password"`
	Facility string `form:"structure" json:"facility"`
}

type Status struct {
	OK       bool   `json:"ok"`
	Message  string `json:"message"`
	Facility string `json:"facility"`
}

func Connect(c Credentials) Status {
	facility := NormalizeFacility(c.Facility)
	if c.Name != "" && c.Password != "" {
		return Status{OK: true, Message: ConnectedMessage, Facility: facility}
	}
	return Status{OK: false, Message: MissingMessage, Facility: facility}
}
