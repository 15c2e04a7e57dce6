// Package decoder implements the uplink payload decoder of the vibrating-wire
// strain (weight) sensor.
//
// Payload layout (big-endian):
//
//	offset 0  version (must be 2)
//	offset 1  device ID (uint16)
//	offset 3  sensor flags (uint16), bit i enables sensor block i
//	offset 5  data words (uint16) of the enabled sensor blocks
package decoder

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ProtocolVersion is the only supported payload protocol version.
const ProtocolVersion = 2

const (
	headerSize = 5
	wordSize   = 2
	flagBits   = 16
)

// Decoder decodes sensor payloads using a fixed calibration.
// It is safe for concurrent use.
type Decoder struct {
	calibration Calibration
}

// New creates a new Decoder.
func New(c Calibration) *Decoder {
	return &Decoder{calibration: c}
}

// Calibration returns the calibration of the decoder.
func (d *Decoder) Calibration() Calibration {
	return d.calibration
}

// Decode decodes the given payload using the default calibration.
func Decode(b []byte) (DecodedPayload, error) {
	return New(DefaultCalibration()).Decode(b)
}

// DecodeHex decodes the given hex encoded payload using the default
// calibration.
func DecodeHex(s string) (DecodedPayload, error) {
	return New(DefaultCalibration()).DecodeHex(s)
}

// DecodeHex decodes the given hex encoded payload.
func (d *Decoder) DecodeHex(s string) (DecodedPayload, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		err = errors.Wrap(ErrInvalidHexEncoding, err.Error())
		payloadCounter(resultLabel(err)).Inc()
		return DecodedPayload{}, err
	}

	return d.Decode(b)
}

// Decode decodes the given payload. On error, no (partial) result is
// returned.
func (d *Decoder) Decode(b []byte) (DecodedPayload, error) {
	pl, blocks, err := d.decode(b)
	payloadCounter(resultLabel(err)).Inc()
	if err != nil {
		return DecodedPayload{}, err
	}

	for _, i := range blocks {
		sensorBlockCounter(i).Inc()
	}

	log.WithFields(log.Fields{
		"device_id":         pl.DeviceID,
		"flags":             pl.Flags,
		"measurement_count": pl.Len(),
	}).Debug("decoder: payload decoded")

	return pl, nil
}

func (d *Decoder) decode(b []byte) (DecodedPayload, []int, error) {
	if len(b) == 0 {
		return DecodedPayload{}, nil, errors.Wrap(ErrTruncatedPayload, "read protocol version error")
	}

	if b[0] != ProtocolVersion {
		return DecodedPayload{}, nil, &UnsupportedProtocolVersionError{Version: b[0]}
	}

	if len(b) < headerSize {
		return DecodedPayload{}, nil, errors.Wrapf(ErrTruncatedPayload, "header requires %d bytes, got %d", headerSize, len(b))
	}

	pl := DecodedPayload{
		Version:  b[0],
		DeviceID: binary.BigEndian.Uint16(b[1:3]),
		Flags:    binary.BigEndian.Uint16(b[3:5]),
	}

	words := readWords(b[headerSize:])
	var cur int
	var blocks []int

	for i, sensor := range sensors {
		if i >= flagBits {
			break
		}
		if !sensorEnabled(pl.Flags, i) {
			continue
		}

		if cur+sensor.Length > len(words) {
			return DecodedPayload{}, nil, errors.Wrapf(ErrTruncatedPayload, "sensor %d requires %d words, %d available", i, sensor.Length, len(words)-cur)
		}
		x := words[cur : cur+sensor.Length]
		cur += sensor.Length
		blocks = append(blocks, i)

		for _, v := range sensor.Values {
			if v.Convert == nil {
				continue
			}

			f := v.Convert(x, d.calibration)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return DecodedPayload{}, nil, errors.Wrapf(ErrNonFiniteValue, "sensor %d value %q", i, v.Name)
			}

			pl.measurements = append(pl.measurements, Measurement{
				Name:  v.Name,
				Value: f,
				Unit:  v.Unit,
			})
		}
	}

	return pl, blocks, nil
}

// readWords reads the big-endian words from b. A trailing odd byte is
// ignored.
func readWords(b []byte) []uint16 {
	words := make([]uint16, 0, len(b)/wordSize)
	for i := 0; i+wordSize <= len(b); i += wordSize {
		words = append(words, binary.BigEndian.Uint16(b[i:i+wordSize]))
	}
	return words
}

// sensorEnabled returns true when bit i (LSB first) of flags is set.
func sensorEnabled(flags uint16, i int) bool {
	return (flags>>uint(i))&1 == 1
}
