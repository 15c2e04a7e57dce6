package decoder

import (
	"encoding/json"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

// Measurement holds a single decoded value.
// An empty Unit means the value has no unit.
type Measurement struct {
	Name  string
	Value float64
	Unit  string
}

// DecodedPayload holds the decoded payload. The measurements are kept in
// sensor-block order, then in value order within the block.
type DecodedPayload struct {
	Version  uint8
	DeviceID uint16
	Flags    uint16

	measurements []Measurement
}

// Len returns the number of measurements.
func (p DecodedPayload) Len() int {
	return len(p.measurements)
}

// Names returns the measurement names in order.
func (p DecodedPayload) Names() []string {
	out := make([]string, 0, len(p.measurements))
	for _, m := range p.measurements {
		out = append(out, m.Name)
	}
	return out
}

// Measurements returns a copy of the measurements in order.
func (p DecodedPayload) Measurements() []Measurement {
	return append([]Measurement(nil), p.measurements...)
}

// Get returns the measurement for the given name.
func (p DecodedPayload) Get(name string) (Measurement, bool) {
	for _, m := range p.measurements {
		if m.Name == name {
			return m, true
		}
	}
	return Measurement{}, false
}

type jsonMeasurement struct {
	Value float64 `json:"value"`
	Unit  *string `json:"unit"`
}

// MarshalJSON renders the measurements as an ordered JSON object
// (name -> {"value": ..., "unit": ...}). The header fields are not part of
// the output.
func (p DecodedPayload) MarshalJSON() ([]byte, error) {
	om := orderedmap.New()
	for _, m := range p.measurements {
		jm := jsonMeasurement{Value: m.Value}
		if m.Unit != "" {
			unit := m.Unit
			jm.Unit = &unit
		}
		om.Set(m.Name, jm)
	}

	b, err := json.Marshal(om)
	if err != nil {
		return nil, errors.Wrap(err, "marshal measurements error")
	}
	return b, nil
}
