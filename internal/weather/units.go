package weather

// TemperatureUnit selects how temperatures are displayed. Provider values
// are always Celsius.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

// Valid reports whether u is a known unit.
func (u TemperatureUnit) Valid() bool {
	return u == Celsius || u == Fahrenheit
}

// ConvertTemperature converts a Celsius value into unit.
func ConvertTemperature(c float64, unit TemperatureUnit) float64 {
	if unit == Fahrenheit {
		return c*9/5 + 32
	}
	return c
}

// TemperatureSymbol returns the display suffix for unit.
func TemperatureSymbol(unit TemperatureUnit) string {
	if unit == Fahrenheit {
		return "°F"
	}
	return "°C"
}
