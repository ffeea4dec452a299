package customer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() Profile {
	return Profile{
		Name:    "Laura Méndez",
		Company: "Clínica Norte",
		Email:   "Laura@ClinicaNorte.test",
		Phone:   "+52 55 1234 5678",
		Address: "Av. Reforma 100",
	}
}

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(validProfile())
	require.NoError(t, err)

	assert.Equal(t, "Laura Méndez", c.Name())
	assert.Equal(t, "laura@clinicanorte.test", c.Email().String())
	assert.Equal(t, "Clínica Norte", c.Profile().Company)
}

func TestNewCustomer_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"missing name", func(p *Profile) { p.Name = " " }},
		{"long name", func(p *Profile) { p.Name = strings.Repeat("n", 256) }},
		{"bad email", func(p *Profile) { p.Email = "nope" }},
		{"long phone", func(p *Profile) { p.Phone = strings.Repeat("1", 51) }},
		{"long address", func(p *Profile) { p.Address = strings.Repeat("a", 501) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			_, err := NewCustomer(p)
			assert.Error(t, err)
		})
	}
}

func TestCustomer_Update(t *testing.T) {
	c, err := ReconstructCustomer(4, validProfile(), time.Now(), time.Now())
	require.NoError(t, err)

	p := validProfile()
	p.Email = "soporte@clinicanorte.test"
	p.Company = ""
	require.NoError(t, c.Update(p))

	assert.Equal(t, "soporte@clinicanorte.test", c.Email().String())
	assert.Empty(t, c.Company())

	p.Name = ""
	assert.Error(t, c.Update(p))
	assert.Equal(t, "Laura Méndez", c.Name())
}
