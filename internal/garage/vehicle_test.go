package garage

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/garage-planner/internal/common"
)

func TestNewVehicleNormalizesPlate(t *testing.T) {
	v, err := NewVehicle("abc1d23", " Onix ", "Chevrolet", 2021, "Prata")

	require.NoError(t, err)
	assert.Equal(t, "ABC1D23", v.Plate)
	assert.Equal(t, "ABC1D23", v.ID())
	assert.Equal(t, "Onix", v.Model)
}

func TestNewVehicleAcceptsOldPlateFormat(t *testing.T) {
	_, err := NewVehicle("XYZ9876", "Gol", "Volkswagen", 2008, "Branco")
	assert.NoError(t, err)
}

func TestNewVehicleRejectsMalformedPlate(t *testing.T) {
	for _, plate := range []string{"AB12345", "ABCD123", "ABC12D3", "", "ABC1D2"} {
		_, err := NewVehicle(plate, "Onix", "Chevrolet", 2021, "Prata")

		assert.ErrorIs(t, err, common.ErrValidation, "plate %q", plate)
	}
}

func TestNewVehicleRequiredFields(t *testing.T) {
	_, err := NewVehicle("ABC1D23", " ", "", 0, "")

	var verr *common.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Reason
	}
	assert.Equal(t, map[string]string{
		"model": "is required",
		"make":  "is required",
		"year":  "is required",
		"color": "is required",
	}, fields)
}

func TestNewVehicleYearRange(t *testing.T) {
	_, err := NewVehicle("ABC1D23", "Ford T", "Ford", 1700, "Preto")

	var verr *common.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "year", verr.Fields[0].Field)
	assert.Equal(t, "must be at least 1886", verr.Fields[0].Reason)
}

func TestNewVehicleDoesNotAliasInput(t *testing.T) {
	buf := []byte("ABC1D23OnixChevroletPrata")
	view := func(from, to int) string { return unsafe.String(&buf[from], to-from) }

	v, err := NewVehicle(view(0, 7), view(7, 11), view(11, 20), 2021, view(20, 25))
	require.NoError(t, err)
	copy(buf, "ZZZ9Z99XxxxYyyyyyyyyWwwww")

	assert.Equal(t, Vehicle{Plate: "ABC1D23", Model: "Onix", Make: "Chevrolet", Year: 2021, Color: "Prata"}, v)
}
