package topology

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rominabarouti/FacilityGraph/pkg/ifc"
)

// QuantityPolicy chooses one value when several candidates share a tier.
type QuantityPolicy string

const (
	PolicyMax   QuantityPolicy = "max"
	PolicyMin   QuantityPolicy = "min"
	PolicyFirst QuantityPolicy = "first"
)

// ParseQuantityPolicy maps a configuration string to a policy. The empty
// string selects PolicyMax.
func ParseQuantityPolicy(s string) (QuantityPolicy, error) {
	switch p := QuantityPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyMax, nil
	case PolicyMax, PolicyMin, PolicyFirst:
		return p, nil
	default:
		return "", fmt.Errorf("unknown quantity policy %q", s)
	}
}

// Quantity is an optional non-negative measurement.
type Quantity struct {
	Value float64
	Valid bool
}

// String formats the quantity with two decimals, or "" when unset.
func (q Quantity) String() string {
	if !q.Valid {
		return ""
	}
	return strconv.FormatFloat(q.Value, 'f', 2, 64)
}

// ParseNumber reads a numeric property value, tolerating thousands
// separators and surrounding whitespace.
func ParseNumber(text string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if cleaned == "" || isHexFloat(cleaned) {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isHexFloat reports a "0x" mantissa, which ParseFloat accepts but property
// values never use.
func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// quantityRule names the preferred properties of a measurement and the
// substring used by the fallback tier.
type quantityRule struct {
	preferred []string
	contains  string
}

var (
	areaRule   = quantityRule{preferred: []string{"netfloorarea", "grossfloorarea"}, contains: "area"}
	volumeRule = quantityRule{preferred: []string{"netvolume", "grossvolume"}, contains: "volume"}
)

// tiers collects candidate values for one measurement.
type tiers struct {
	preferred []float64
	fallback  []float64
}

func (t *tiers) offer(rule quantityRule, name string, v float64) {
	for _, p := range rule.preferred {
		if name == p {
			t.preferred = append(t.preferred, v)
			return
		}
	}
	if strings.Contains(name, rule.contains) {
		t.fallback = append(t.fallback, v)
	}
}

func (t *tiers) pick(policy QuantityPolicy) Quantity {
	cands := t.preferred
	if len(cands) == 0 {
		cands = t.fallback
	}
	if len(cands) == 0 {
		return Quantity{}
	}
	best := cands[0]
	for _, v := range cands[1:] {
		switch policy {
		case PolicyMin:
			if v < best {
				best = v
			}
		case PolicyFirst:
		default:
			if v > best {
				best = v
			}
		}
	}
	return Quantity{Value: best, Valid: true}
}

// ExtractQuantities picks floor area and volume from a space's property and
// quantity sets. Unparsable and negative values are ignored.
func ExtractQuantities(psets ifc.PropertySets, policy QuantityPolicy) (area, volume Quantity) {
	var a, v tiers
	for _, pv := range psets.Flatten() {
		fv, ok := ParseNumber(pv.Value)
		if !ok || fv < 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(pv.Name))
		a.offer(areaRule, name, fv)
		v.offer(volumeRule, name, fv)
	}
	return a.pick(policy), v.pick(policy)
}
