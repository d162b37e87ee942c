package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		message string
		want    Reason
	}{
		{"Email inexistant", ReasonUnknownEmail},
		{"email not found", ReasonUnknownEmail},
		{"Cet email est introuvable", ReasonUnknownEmail},
		{"mot de passe incorrect", ReasonWrongPassword},
		{"Invalid password", ReasonWrongPassword},
		{"role insuffisant", ReasonInsufficientRole},
		{"permission denied", ReasonInsufficientRole},
		{"Vous n'êtes pas autorisé", ReasonInsufficientRole},
		{"something else entirely", ReasonUnknown},
		{"", ReasonUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, classify(tc.message), "message %q", tc.message)
	}
}
