package tahti

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// EffectSpec is an opaque named parameter bag on a track's insert chain.
// The parameter set is seeded from the built-in catalog when the effect is
// created and is an open bag afterwards; automation enumerates the keys at
// query time.
type EffectSpec struct {
	ID      string             `yaml:"id" json:"id"`
	Name    string             `yaml:"name" json:"name"`
	Enabled bool               `yaml:"enabled" json:"enabled"`
	Params  map[string]float64 `yaml:"params" json:"params"`
}

// effectCatalog maps a normalized effect name to its default parameters.
var effectCatalog = map[string]map[string]float64{
	"eq": {
		"low_gain_db":  0,
		"mid_gain_db":  0,
		"high_gain_db": 0,
		"low_freq_hz":  200,
		"high_freq_hz": 4000,
	},
	"compressor": {
		"threshold_db": -18,
		"ratio":        4,
		"attack_ms":    10,
		"release_ms":   120,
		"makeup_db":    0,
	},
	"delay": {
		"time_ms":  250,
		"feedback": 0.35,
		"mix":      0.25,
	},
	"reverb": {
		"room_size": 0.6,
		"damping":   0.4,
		"mix":       0.2,
	},
	"bitcrusher": {
		"bit_depth":      8,
		"sample_rate_hz": 11025,
		"mix":            1,
	},
	"limiter": {
		"ceiling_db": -0.3,
		"release_ms": 50,
	},
	"chorus": {
		"rate_hz": 1.2,
		"depth":   0.3,
		"mix":     0.3,
	},
}

// NewEffect creates an effect with the catalog defaults for its normalized
// name. Unknown names get an empty parameter bag; the name is kept as given
// for display.
func NewEffect(name string) EffectSpec {
	params := map[string]float64{}
	if defaults, ok := effectCatalog[NormalizeEffectName(name)]; ok {
		for k, v := range defaults {
			params[k] = v
		}
	}
	return EffectSpec{
		ID:      uuid.NewString(),
		Name:    name,
		Enabled: true,
		Params:  params,
	}
}

// NormalizeEffectName is the catalog lookup key for an effect name.
func NormalizeEffectName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Copy makes a deep copy of an EffectSpec.
func (e *EffectSpec) Copy() EffectSpec {
	params := make(map[string]float64, len(e.Params))
	for k, v := range e.Params {
		params[k] = v
	}
	ret := *e
	ret.Params = params
	return ret
}

// ParamNames returns the parameter keys in a stable order.
func (e *EffectSpec) ParamNames() []string {
	names := make([]string, 0, len(e.Params))
	for name := range e.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
