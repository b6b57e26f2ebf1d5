package tahti

import (
	"reflect"
	"testing"
)

func TestNewEffectSeedsCatalogDefaults(t *testing.T) {
	e := NewEffect("  Limiter ")
	if e.Name != "  Limiter " {
		t.Errorf("display name changed to %q", e.Name)
	}
	if !e.Enabled {
		t.Error("new effect should start enabled")
	}
	if e.Params["ceiling_db"] != -0.3 || e.Params["release_ms"] != 50 {
		t.Errorf("limiter defaults = %v", e.Params)
	}
}

func TestNewEffectUnknownNameGetsEmptyBag(t *testing.T) {
	e := NewEffect("granulator")
	if len(e.Params) != 0 {
		t.Errorf("unknown effect params = %v, expected empty", e.Params)
	}
	if e.Params == nil {
		t.Error("params map should be allocated")
	}
}

func TestEffectParamNamesAreSorted(t *testing.T) {
	e := NewEffect("eq")
	expected := []string{"high_freq_hz", "high_gain_db", "low_freq_hz", "low_gain_db", "mid_gain_db"}
	if got := e.ParamNames(); !reflect.DeepEqual(got, expected) {
		t.Errorf("ParamNames() = %v, expected %v", got, expected)
	}
}

func TestEffectCopyIsDeep(t *testing.T) {
	e := NewEffect("delay")
	c := e.Copy()
	c.Params["time_ms"] = 500
	if e.Params["time_ms"] != 250 {
		t.Error("copy shares the parameter bag")
	}
}
