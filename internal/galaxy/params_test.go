package galaxy

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeParamsPartial(t *testing.T) {
	in := `{"density": 2.5, "focal": [0.2, 0.8], "transparent": false}`
	p, err := DecodeParams(strings.NewReader(in), DefaultParams())
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	want := DefaultParams()
	want.Density = 2.5
	want.Focal = [2]float64{0.2, 0.8}
	want.Transparent = false
	if p != want {
		t.Errorf("DecodeParams =\n%+v\nwant\n%+v", p, want)
	}
}

func TestDecodeParamsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown key", `{"starSpeeed": 1}`},
		{"wrong type", `{"density": "high"}`},
		{"bad colour", `{"hueColor": "not-a-colour"}`},
		{"truncated", `{"density": 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := DefaultParams()
			base.Speed = 3
			p, err := DecodeParams(strings.NewReader(tt.in), base)
			if err == nil {
				t.Fatal("DecodeParams succeeded, want error")
			}
			if p != base {
				t.Errorf("DecodeParams returned %+v on error, want base", p)
			}
		})
	}
}

func TestDecodeParamsHueColor(t *testing.T) {
	p, err := DecodeParams(strings.NewReader(`{"hueShift": 10, "hueColor": "#0000ff"}`), DefaultParams())
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	if math.Abs(p.HueShift-240) > 1e-9 {
		t.Errorf("HueShift = %v, want 240", p.HueShift)
	}
}

func TestLoadParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calm.json")
	if err := os.WriteFile(path, []byte(`{"speed": 0.25, "disableAnimation": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p.Speed != 0.25 || !p.DisableAnimation || p.HueShift != 140 {
		t.Errorf("LoadParams = %+v", p)
	}

	if _, err := LoadParams(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadParams(missing) = %v, want ErrNotExist", err)
	}
}

func TestFieldEnvNames(t *testing.T) {
	want := map[string]string{
		"focal":               "GALAXY_FOCAL",
		"starSpeed":           "GALAXY_STAR_SPEED",
		"autoCenterRepulsion": "GALAXY_AUTO_CENTER_REPULSION",
		"hueColor":            "GALAXY_HUE_COLOR",
	}
	seen := 0
	for _, f := range Fields {
		if w, ok := want[f.Name]; ok {
			seen++
			if got := f.Env(); got != w {
				t.Errorf("%s.Env() = %q, want %q", f.Name, got, w)
			}
		}
	}
	if seen != len(want) {
		t.Errorf("found %d of %d fields", seen, len(want))
	}
}

func TestFieldFlagNames(t *testing.T) {
	for _, f := range Fields {
		if f.Name == "autoCenterRepulsion" {
			if got := f.Flag(); got != "auto-center-repulsion" {
				t.Errorf("Flag() = %q", got)
			}
			return
		}
	}
	t.Error("autoCenterRepulsion not found")
}

func TestFieldsRoundTrip(t *testing.T) {
	p := DefaultParams()
	for _, f := range Fields {
		if f.Name == "hueColor" {
			continue
		}
		var q Params
		if err := f.Set(&q, f.Get(&p)); err != nil {
			t.Errorf("%s: Set(Get()) = %v", f.Name, err)
			continue
		}
		if got, want := f.Get(&q), f.Get(&p); got != want {
			t.Errorf("%s: round trip %q, want %q", f.Name, got, want)
		}
	}
}

func TestFieldIsBool(t *testing.T) {
	bools := map[string]bool{
		"disableAnimation": true,
		"mouseInteraction": true,
		"mouseRepulsion":   true,
		"transparent":      true,
	}
	for _, f := range Fields {
		if got := f.IsBool(); got != bools[f.Name] {
			t.Errorf("%s.IsBool() = %v", f.Name, got)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"GALAXY_DENSITY":           "3",
		"GALAXY_ROTATION":          " 0, 1 ",
		"GALAXY_MOUSE_INTERACTION": "false",
		"GALAXY_SPEED":             "fast",
		"GALAXY_FOCAL":             "0.5",
		"GALAXY_SATURATION":        "",
	}
	p := DefaultParams()
	err := p.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err == nil {
		t.Fatal("ApplyEnv accepted bad values")
	}
	for _, k := range []string{"GALAXY_SPEED", "GALAXY_FOCAL"} {
		if !strings.Contains(err.Error(), k) {
			t.Errorf("error %q does not name %s", err, k)
		}
	}

	want := DefaultParams()
	want.Density = 3
	want.Rotation = [2]float64{0, 1}
	want.MouseInteraction = false
	if p != want {
		t.Errorf("ApplyEnv =\n%+v\nwant\n%+v", p, want)
	}
}
