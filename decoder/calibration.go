package decoder

import (
	"math"

	"github.com/pkg/errors"
)

// clockFrequency is the frequency (Hz) of the 32.768 kHz reference clock
// against which the sensor counts the wire oscillations.
const clockFrequency = 32768

// Calibration holds the installation specific constants used to convert the
// measured wire frequency into weight, elongation and strain.
type Calibration struct {
	// F0 is the reference (unloaded) frequency of the wire in Hz.
	F0 float64 `mapstructure:"f0"`

	// K is the stiffness coefficient of the sensor.
	K float64 `mapstructure:"k"`

	// ElongationFactor converts the weight equivalent (kg) into
	// a displacement.
	ElongationFactor float64 `mapstructure:"elongation_factor"`

	// Gravity is the gravitational acceleration in m/s².
	Gravity float64 `mapstructure:"gravity"`

	// GaugeLength is the length of the measurement base in m.
	GaugeLength float64 `mapstructure:"gauge_length"`
}

// DefaultCalibration returns the factory calibration of the DL-KL66.
func DefaultCalibration() Calibration {
	return Calibration{
		F0:               15383.72,
		K:                46.4859,
		ElongationFactor: -1.5,
		Gravity:          9.8067,
		GaugeLength:      0.066,
	}
}

// Validate validates the calibration constants.
func (c Calibration) Validate() error {
	params := []struct {
		name  string
		value float64
	}{
		{"f0", c.F0},
		{"k", c.K},
		{"elongation_factor", c.ElongationFactor},
		{"gravity", c.Gravity},
		{"gauge_length", c.GaugeLength},
	}
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return errors.Wrapf(ErrInvalidCalibration, "%s must be a finite number", p.name)
		}
	}

	if c.GaugeLength == 0 {
		return errors.Wrap(ErrInvalidCalibration, "gauge_length must not be zero")
	}

	return nil
}

// Frequency returns the wire frequency (Hz) given the oscillation count and
// the raw measurement interval (in clock ticks).
func Frequency(count, interval uint16) float64 {
	return float64(count) / float64(interval) * clockFrequency
}

// Weight returns the weight (g) for the given wire frequency.
// It is zero when frequency equals F0.
func (c Calibration) Weight(frequency float64) float64 {
	return (math.Pow(frequency, 2) - math.Pow(c.F0, 2)) * c.K / 1000000
}

// Elongation returns the elongation (µm) for the given weight.
func (c Calibration) Elongation(weight float64) float64 {
	return weight * c.ElongationFactor / 1000 * c.Gravity
}

// Strain returns the strain (µm⋅m⁻¹) for the given elongation.
func (c Calibration) Strain(elongation float64) float64 {
	return elongation / c.GaugeLength
}
