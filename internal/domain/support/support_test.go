package support

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupport(t *testing.T) {
	s, err := NewSupport(Profile{Name: " Diego Ruiz ", Email: "DIEGO@helpdesk.test", Specialty: "Printers"})
	require.NoError(t, err)

	assert.Equal(t, "Diego Ruiz", s.Name())
	assert.Equal(t, "diego@helpdesk.test", s.Email().String())
	assert.Equal(t, "Printers", s.Specialty())
}

func TestNewSupport_Validation(t *testing.T) {
	_, err := NewSupport(Profile{Email: "diego@helpdesk.test"})
	assert.EqualError(t, err, "name is required")

	_, err = NewSupport(Profile{Name: "Diego", Email: "diego"})
	assert.Error(t, err)
}

func TestSupport_UpdateAndSetID(t *testing.T) {
	s, err := NewSupport(Profile{Name: "Diego", Email: "diego@helpdesk.test"})
	require.NoError(t, err)
	require.NoError(t, s.SetID(2))
	assert.Error(t, s.SetID(3))

	require.NoError(t, s.Update(Profile{Name: "Diego R.", Email: "druiz@helpdesk.test", Phone: "555"}))
	assert.Equal(t, "druiz@helpdesk.test", s.Profile().Email)
	assert.Equal(t, "555", s.Phone())
}
