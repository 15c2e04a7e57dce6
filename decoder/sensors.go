package decoder

// ConvertFunc converts the words of a sensor block into a single value.
type ConvertFunc func(words []uint16, c Calibration) float64

// ValueDescriptor describes a single value within a sensor block.
// A nil Convert marks a reserved slot which is skipped when decoding.
type ValueDescriptor struct {
	Name    string
	Unit    string
	Convert ConvertFunc
}

// SensorDescriptor describes a sensor block: the number of words it
// occupies in the payload and the values derived from these words.
type SensorDescriptor struct {
	Length int
	Values []ValueDescriptor
}

// sensors holds the sensor blocks in flag-bit order. Bit i of the flags
// field enables sensors[i]. It must not be modified.
var sensors = []SensorDescriptor{
	{
		Length: 3,
		Values: []ValueDescriptor{
			{
				Name: "Counter reading",
				Convert: func(w []uint16, _ Calibration) float64 {
					return float64(w[0])
				},
			},
			{
				Name: "Measurement interval",
				Convert: func(w []uint16, _ Calibration) float64 {
					return float64(w[1]) / clockFrequency
				},
			},
			{
				Name: "Frequency",
				Unit: "Hz",
				Convert: func(w []uint16, _ Calibration) float64 {
					return Frequency(w[0], w[1])
				},
			},
			{
				Name: "Weight",
				Unit: "g",
				Convert: func(w []uint16, c Calibration) float64 {
					return c.Weight(Frequency(w[0], w[1]))
				},
			},
			{
				Name: "Elongation",
				Unit: "µm",
				Convert: func(w []uint16, c Calibration) float64 {
					return c.Elongation(c.Weight(Frequency(w[0], w[1])))
				},
			},
			{
				Name: "Strain",
				Unit: "µm⋅m⁻¹",
				Convert: func(w []uint16, c Calibration) float64 {
					return c.Strain(c.Elongation(c.Weight(Frequency(w[0], w[1]))))
				},
			},
		},
	},
	{
		Length: 1,
		Values: []ValueDescriptor{
			{
				Name: "Battery voltage",
				Unit: "V",
				Convert: func(w []uint16, _ Calibration) float64 {
					return float64(w[0]) / 1000
				},
			},
		},
	},
}

// Sensors returns a copy of the sensor descriptor table.
func Sensors() []SensorDescriptor {
	out := make([]SensorDescriptor, len(sensors))
	for i, s := range sensors {
		out[i] = SensorDescriptor{
			Length: s.Length,
			Values: append([]ValueDescriptor(nil), s.Values...),
		}
	}
	return out
}
