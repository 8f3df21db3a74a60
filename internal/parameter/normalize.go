package parameter

type normalizer func(p Parameter, v Value) float64

var normalizers = map[Kind]normalizer{
	KindNumber:  normalizeNumber,
	KindSelect:  normalizeSelect,
	KindToggle:  normalizeToggle,
	KindOptions: normalizeOptions,
	KindCustom:  normalizeCustom,
}

var selectLevels = map[string]float64{
	"low":    0.5,
	"medium": 1,
	"high":   1.5,
}

var urgencyLevels = map[string]float64{
	"low":    0.7,
	"normal": 1,
	"high":   1.3,
	"urgent": 1.6,
}

// Normalize maps a raw value of p to a dimensionless effect magnitude.
// Numbers rescale into [0, 1] over the parameter bounds; categorical kinds map to a
// multiplier near 1.
func Normalize(p Parameter, v Value) float64 {
	fn, ok := normalizers[p.Kind]
	if !ok {
		return 0
	}
	return fn(p, v)
}

func normalizeNumber(p Parameter, v Value) float64 {
	n, ok := v.Float()
	if !ok {
		return 0
	}
	lo, hi := 0.0, 1.0
	if p.Min != nil {
		lo = *p.Min
	}
	if p.Max != nil {
		hi = *p.Max
	}
	// min == max is a configuration error; it surfaces as Inf/NaN, not a panic.
	return (n - lo) / (hi - lo)
}

func normalizeSelect(_ Parameter, v Value) float64 {
	s, ok := v.Str()
	if !ok {
		return 1
	}
	return lookupLevel(selectLevels, s)
}

func normalizeOptions(_ Parameter, v Value) float64 {
	if list, ok := v.Strings(); ok {
		if len(list) == 0 {
			return 1
		}
		return 1 + 0.2*float64(len(list))
	}
	s, ok := v.Str()
	if !ok {
		return 1
	}
	return lookupLevel(urgencyLevels, s)
}

func normalizeToggle(_ Parameter, v Value) float64 {
	if b, ok := v.Bool(); ok && b {
		return 1
	}
	return 0
}

func normalizeCustom(_ Parameter, v Value) float64 {
	n, _ := v.Float()
	return n
}

func lookupLevel(levels map[string]float64, token string) float64 {
	if level, ok := levels[token]; ok {
		return level
	}
	return 1
}
