// Package units formatea cantidades de la planta (m³, kg, %) con separadores es-PE.
package units

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale por defecto de la planta.
var Locale = language.MustParse("es-PE")

var printer = message.NewPrinter(Locale)

// FormatNumber formatea n con separadores de miles y exactamente decimals decimales.
func FormatNumber(n decimal.Decimal, decimals int) string {
	return printer.Sprint(number.Decimal(n.InexactFloat64(),
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// FormatKg formatea una cantidad en kilogramos con unidad.
func FormatKg(kg decimal.Decimal, decimals int) string {
	return FormatNumber(kg, decimals) + " kg"
}

// FormatM3 formatea una cantidad en metros cúbicos con unidad.
func FormatM3(m3 decimal.Decimal, decimals int) string {
	return FormatNumber(m3, decimals) + " m³"
}

// FormatPercentage formatea un porcentaje.
func FormatPercentage(v decimal.Decimal, decimals int) string {
	return FormatNumber(v, decimals) + "%"
}
