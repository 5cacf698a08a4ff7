package galaxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// Params is the externally configurable set of visual knobs. No field is
// validated; negative or extreme values simply render degenerate frames.
type Params struct {
	Focal               [2]float64 `json:"focal"`
	Rotation            [2]float64 `json:"rotation"` // (cos, sin)
	StarSpeed           float64    `json:"starSpeed"`
	Density             float64    `json:"density"`
	HueShift            float64    `json:"hueShift"` // degrees
	DisableAnimation    bool       `json:"disableAnimation"`
	Speed               float64    `json:"speed"`
	MouseInteraction    bool       `json:"mouseInteraction"`
	GlowIntensity       float64    `json:"glowIntensity"`
	Saturation          float64    `json:"saturation"`
	MouseRepulsion      bool       `json:"mouseRepulsion"`
	TwinkleIntensity    float64    `json:"twinkleIntensity"`
	RotationSpeed       float64    `json:"rotationSpeed"`
	RepulsionStrength   float64    `json:"repulsionStrength"`
	AutoCenterRepulsion float64    `json:"autoCenterRepulsion"`
	Transparent         bool       `json:"transparent"`
}

// DefaultParams returns the stock look.
func DefaultParams() Params {
	return Params{
		Focal:               [2]float64{0.5, 0.5},
		Rotation:            [2]float64{1, 0},
		StarSpeed:           0.5,
		Density:             1,
		HueShift:            140,
		Speed:               1,
		MouseInteraction:    true,
		GlowIntensity:       0.3,
		Saturation:          0,
		MouseRepulsion:      true,
		TwinkleIntensity:    0.3,
		RotationSpeed:       0.1,
		RepulsionStrength:   2,
		AutoCenterRepulsion: 0,
		Transparent:         true,
	}
}

// preset is the on-disk form: Params plus an optional hue given as a colour.
type preset struct {
	Params
	HueColor string `json:"hueColor,omitempty"`
}

// DecodeParams reads a JSON preset on top of base. Keys that are absent keep
// their base values; unknown keys are an error.
func DecodeParams(r io.Reader, base Params) (Params, error) {
	pr := preset{Params: base}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pr); err != nil {
		return base, fmt.Errorf("decode preset: %w", err)
	}
	if pr.HueColor != "" {
		if err := pr.Params.SetHueColor(pr.HueColor); err != nil {
			return base, err
		}
	}
	return pr.Params, nil
}

// LoadParams reads the preset at path on top of the defaults.
func LoadParams(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultParams(), fmt.Errorf("open preset: %w", err)
	}
	defer f.Close()
	return DecodeParams(f, DefaultParams())
}

// SetHueColor sets HueShift to the hue, in degrees, of a hex colour such as
// "#44aaff".
func (p *Params) SetHueColor(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("hue colour %q: %w", hex, err)
	}
	h, _, _ := c.Hsv()
	p.HueShift = h
	return nil
}

// Field describes one parameter for the text front-ends: environment
// variables and command-line flags.
type Field struct {
	Name  string // camelCase, as in JSON
	Usage string
	set   func(p *Params, s string) error
	get   func(p *Params) string
}

// Env returns the environment variable for the field, e.g. GALAXY_STAR_SPEED.
func (f Field) Env() string {
	var b strings.Builder
	b.WriteString("GALAXY_")
	for i, r := range f.Name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Flag returns the command-line flag name, e.g. star-speed.
func (f Field) Flag() string {
	var b strings.Builder
	for i, r := range f.Name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Set parses s into the field of p.
func (f Field) Set(p *Params, s string) error {
	if err := f.set(p, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return nil
}

// Get formats the field of p.
func (f Field) Get(p *Params) string { return f.get(p) }

// IsBool reports whether the field is a switch.
func (f Field) IsBool() bool {
	v := f.get(&Params{})
	return v == "false" || v == "true"
}

func floatField(name, usage string, ptr func(*Params) *float64) Field {
	return Field{
		Name:  name,
		Usage: usage,
		set: func(p *Params, s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			*ptr(p) = v
			return nil
		},
		get: func(p *Params) string { return strconv.FormatFloat(*ptr(p), 'g', -1, 64) },
	}
}

func boolField(name, usage string, ptr func(*Params) *bool) Field {
	return Field{
		Name:  name,
		Usage: usage,
		set: func(p *Params, s string) error {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			*ptr(p) = v
			return nil
		},
		get: func(p *Params) string { return strconv.FormatBool(*ptr(p)) },
	}
}

func pairField(name, usage string, ptr func(*Params) *[2]float64) Field {
	return Field{
		Name:  name,
		Usage: usage,
		set: func(p *Params, s string) error {
			a, b, ok := strings.Cut(s, ",")
			if !ok {
				return errors.New("want two comma-separated numbers")
			}
			x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return err
			}
			y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
			if err != nil {
				return err
			}
			*ptr(p) = [2]float64{x, y}
			return nil
		},
		get: func(p *Params) string {
			v := *ptr(p)
			return strconv.FormatFloat(v[0], 'g', -1, 64) + "," + strconv.FormatFloat(v[1], 'g', -1, 64)
		},
	}
}

// Fields lists every parameter, plus the hueColor convenience.
var Fields = []Field{
	pairField("focal", "focal point as x,y in [0,1]", func(p *Params) *[2]float64 { return &p.Focal }),
	pairField("rotation", "static rotation as cos,sin", func(p *Params) *[2]float64 { return &p.Rotation }),
	floatField("starSpeed", "depth travel speed", func(p *Params) *float64 { return &p.StarSpeed }),
	floatField("density", "star density", func(p *Params) *float64 { return &p.Density }),
	floatField("hueShift", "hue rotation in degrees", func(p *Params) *float64 { return &p.HueShift }),
	{
		Name:  "hueColor",
		Usage: "hex colour whose hue becomes hueShift",
		set:   func(p *Params, s string) error { return p.SetHueColor(s) },
		get:   func(p *Params) string { return "" },
	},
	boolField("disableAnimation", "freeze time", func(p *Params) *bool { return &p.DisableAnimation }),
	floatField("speed", "global animation speed", func(p *Params) *float64 { return &p.Speed }),
	boolField("mouseInteraction", "track the pointer", func(p *Params) *bool { return &p.MouseInteraction }),
	floatField("glowIntensity", "star glow and flare strength", func(p *Params) *float64 { return &p.GlowIntensity }),
	floatField("saturation", "star colour saturation", func(p *Params) *float64 { return &p.Saturation }),
	boolField("mouseRepulsion", "push stars away from the pointer", func(p *Params) *bool { return &p.MouseRepulsion }),
	floatField("twinkleIntensity", "twinkle depth", func(p *Params) *float64 { return &p.TwinkleIntensity }),
	floatField("rotationSpeed", "rotation in radians per second", func(p *Params) *float64 { return &p.RotationSpeed }),
	floatField("repulsionStrength", "pointer repulsion strength", func(p *Params) *float64 { return &p.RepulsionStrength }),
	floatField("autoCenterRepulsion", "repulsion from the focal point; wins over the pointer", func(p *Params) *float64 { return &p.AutoCenterRepulsion }),
	boolField("transparent", "derive alpha from brightness", func(p *Params) *bool { return &p.Transparent }),
}

// ApplyEnv overlays GALAXY_* variables found by lookup, usually os.LookupEnv.
// Every bad value is reported; good ones are still applied.
func (p *Params) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	for _, f := range Fields {
		s, ok := lookup(f.Env())
		if !ok || s == "" {
			continue
		}
		if err := f.set(p, strings.TrimSpace(s)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Env(), err))
		}
	}
	return errors.Join(errs...)
}
