package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	cases := []struct {
		name string
		in   Credentials
		ok   bool
	}{
		{"both set", Credentials{Name: "Dr. Ba", Password: "x"}, true},
		{"empty password", Credentials{Name: "Dr. Ba"}, false},
		{"empty name", Credentials{Password: "x"}, false},
		{"both empty", Credentials{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := Connect(tc.in)
			assert.Equal(t, tc.ok, st.OK)
			if tc.ok {
				assert.Equal(t, ConnectedMessage, st.Message)
			} else {
				assert.Equal(t, MissingMessage, st.Message)
			}
		})
	}
}

func TestFacilities(t *testing.T) {
	list := Facilities()
	assert.Len(t, list, 5)
	list[0] = "changed"
	assert.Equal(t, "Hôpital Principal de Dakar", Facilities()[0])

	assert.Equal(t, "Hôpital Matlabul Fawzeyni Touba", NormalizeFacility("Hôpital Matlabul Fawzeyni Touba"))
	assert.Equal(t, "Hôpital Principal de Dakar", NormalizeFacility("Elsewhere"))
	assert.Equal(t, "Hôpital Principal de Dakar", Connect(Credentials{Name: "a", Password: "b"}).Facility)
}
