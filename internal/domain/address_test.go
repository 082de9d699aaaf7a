package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress_Valid(t *testing.T) {
	addr, err := NewAddress("Colombia", "Cundinamarca", "Bogotá", "Carrera", "7", "12", "34", "110111")
	require.NoError(t, err)
	assert.Equal(t, "Colombia", addr.Country)
	assert.Equal(t, "Carrera", addr.StreetType)
	assert.False(t, addr.IsZero())
}

func TestNewAddress_TrimsFields(t *testing.T) {
	addr, err := NewAddress(" Colombia ", " Cundinamarca ", " Bogotá ", " calle ", " 7 ", "", " 34 ", "")
	require.NoError(t, err)
	assert.Equal(t, "Colombia", addr.Country)
	assert.Equal(t, "calle", addr.StreetType)
	assert.Empty(t, addr.CrossStreetNumber)
	assert.Empty(t, addr.ZipCode)
}

func TestNewAddress_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		args [8]string
	}{
		{"missing country", [8]string{"", "Cundinamarca", "Bogotá", "Carrera", "7", "12", "34", ""}},
		{"missing department", [8]string{"Colombia", "", "Bogotá", "Carrera", "7", "12", "34", ""}},
		{"missing city", [8]string{"Colombia", "Cundinamarca", "", "Carrera", "7", "12", "34", ""}},
		{"missing street type", [8]string{"Colombia", "Cundinamarca", "Bogotá", "  ", "7", "12", "34", ""}},
		{"missing street number", [8]string{"Colombia", "Cundinamarca", "Bogotá", "Carrera", "", "12", "34", ""}},
		{"missing property number", [8]string{"Colombia", "Cundinamarca", "Bogotá", "Carrera", "7", "12", "", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.args
			_, err := NewAddress(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
			assert.ErrorIs(t, err, ErrAddressFieldRequired)
		})
	}
}

func TestNewAddress_ColombianStreetTypes(t *testing.T) {
	for _, streetType := range []string{"Carrera", "calle", "DIAGONAL", "Avenida"} {
		_, err := NewAddress("colombia", "Antioquia", "Medellín", streetType, "43", "", "10", "")
		assert.NoError(t, err, "street type %q", streetType)
	}

	_, err := NewAddress("Colombia", "Antioquia", "Medellín", "Boulevard", "43", "", "10", "")
	assert.ErrorIs(t, err, ErrInvalidStreetType)
}

func TestNewAddress_StreetTypeUnrestrictedOutsideColombia(t *testing.T) {
	_, err := NewAddress("Spain", "Madrid", "Madrid", "Boulevard", "43", "", "10", "28001")
	assert.NoError(t, err)
}

func TestAddress_String(t *testing.T) {
	addr, err := NewAddress("Colombia", "Cundinamarca", "Bogotá", "Carrera", "7", "12", "34", "110111")
	require.NoError(t, err)
	assert.Equal(t, "Carrera 7 #12-34, Bogotá, Cundinamarca, Colombia, 110111", addr.String())

	noOptional, err := NewAddress("Colombia", "Cundinamarca", "Bogotá", "Calle", "100", "", "15", "")
	require.NoError(t, err)
	assert.Equal(t, "Calle 100 #15, Bogotá, Cundinamarca, Colombia", noOptional.String())
}

func TestAddress_IsZero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
}
