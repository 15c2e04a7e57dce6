package decoder

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the decoder configuration.
type Config struct {
	Calibration Calibration `mapstructure:"calibration"`
}

// SetDefaults registers the default configuration under the given top-level
// section (e.g. "decoder").
func SetDefaults(v *viper.Viper, prefix string) {
	c := DefaultCalibration()

	v.SetDefault(prefix+".calibration.f0", c.F0)
	v.SetDefault(prefix+".calibration.k", c.K)
	v.SetDefault(prefix+".calibration.elongation_factor", c.ElongationFactor)
	v.SetDefault(prefix+".calibration.gravity", c.Gravity)
	v.SetDefault(prefix+".calibration.gauge_length", c.GaugeLength)
}

// LoadConfig reads the decoder configuration found under the given top-level
// section. Each key can be overridden by an environment variable using double
// underscores as separator, e.g. DECODER__CALIBRATION__F0. Unknown keys
// are rejected.
func LoadConfig(v *viper.Viper, prefix string) (Config, error) {
	SetDefaults(v, prefix)
	bindEnvs(v, Config{}, prefix)

	var c Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &c,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "decoder: new config decoder error")
	}

	if err := dec.Decode(v.AllSettings()[strings.ToLower(prefix)]); err != nil {
		return Config{}, errors.Wrap(err, "decoder: decode config error")
	}

	if err := c.Calibration.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "decoder: validate config error")
	}

	return c, nil
}

func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			tv = strings.ToLower(t.Name)
		}
		if tv == "-" {
			continue
		}

		switch fv.Kind() {
		case reflect.Struct:
			bindEnvs(v, fv.Interface(), append(parts, tv)...)
		default:
			// Bash doesn't allow env variable names with a dot so
			// bind the double underscore version.
			keyDot := strings.Join(append(parts, tv), ".")
			keyUnderscore := strings.Join(append(parts, tv), "__")
			v.BindEnv(keyDot, strings.ToUpper(keyUnderscore))
		}
	}
}
