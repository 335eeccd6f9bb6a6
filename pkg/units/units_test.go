package units_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/planta-despachos/pkg/units"
)

func TestFormatKg_SinDecimales(t *testing.T) {
	assert.Equal(t, "75 kg", units.FormatKg(decimal.NewFromInt(75), 0))
}

func TestFormatM3_Unidad(t *testing.T) {
	out := units.FormatM3(decimal.NewFromInt(10), 2)
	assert.True(t, strings.HasPrefix(out, "10"), out)
	assert.True(t, strings.HasSuffix(out, " m³"), out)
}

func TestFormatPercentage_Redondea(t *testing.T) {
	assert.Equal(t, "65%", units.FormatPercentage(decimal.RequireFromString("65.4"), 0))
}
