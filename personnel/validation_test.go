package personnel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/asn-monitor/personnel"
)

func TestValidationPolicy_Strict(t *testing.T) {
	p := personnel.StrictPolicy()

	assert.NoError(t, p.Validate(personnel.Input{Name: "A", EmployeeNumber: "198703122010012004"}))

	for _, nip := range []string{"", "12345", "19870312201001200X", "1987031220100120041"} {
		err := p.Validate(personnel.Input{Name: "A", EmployeeNumber: nip})
		var vErr *personnel.ValidationError
		require.ErrorAs(t, err, &vErr, nip)
		assert.Equal(t, "employee_number", vErr.Field)
	}
}

func TestValidationPolicy_Relaxed(t *testing.T) {
	p := personnel.RelaxedPolicy()

	assert.NoError(t, p.Validate(personnel.Input{Name: "A", EmployeeNumber: "x"}))
	assert.ErrorIs(t, p.Validate(personnel.Input{Name: "A", EmployeeNumber: " "}), personnel.ErrValidation)
	assert.ErrorIs(t, p.Validate(personnel.Input{Name: "", EmployeeNumber: "x"}), personnel.ErrValidation)
}

func TestParseEmployeeNumberRule(t *testing.T) {
	r, err := personnel.ParseEmployeeNumberRule("Relaxed")
	require.NoError(t, err)
	assert.Equal(t, personnel.EmployeeNumberRelaxed, r)

	r, err = personnel.ParseEmployeeNumberRule("")
	require.NoError(t, err)
	assert.Equal(t, personnel.EmployeeNumberStrict, r)

	_, err = personnel.ParseEmployeeNumberRule("lenient")
	assert.Error(t, err)
}
