package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ahoin001/soma/internal/model"
)

var knownMicroKeys = func() map[model.MicroKey]struct{} {
	m := make(map[model.MicroKey]struct{}, len(model.MicroKeys))
	for _, k := range model.MicroKeys {
		m[k] = struct{}{}
	}
	return m
}()

// microKeyShorthand accepts the bare nutrient name as CLI input.
var microKeyShorthand = map[string]model.MicroKey{
	"sodium":        model.MicroSodiumMg,
	"fiber":         model.MicroFiberG,
	"sugar":         model.MicroSugarG,
	"saturated_fat": model.MicroSaturatedFatG,
	"trans_fat":     model.MicroTransFatG,
	"cholesterol":   model.MicroCholesterolMg,
	"potassium":     model.MicroPotassiumMg,
}

// ParseMicroKey resolves user input ("sodium" or "sodium_mg") to a known
// micronutrient key.
func ParseMicroKey(raw string) (model.MicroKey, bool) {
	s := normalizeName(strings.ReplaceAll(raw, "-", "_"))
	if key, ok := microKeyShorthand[s]; ok {
		return key, true
	}
	key := model.MicroKey(s)
	_, ok := knownMicroKeys[key]
	return key, ok
}

// EncodeMicrosJSON serializes a micronutrient map for local storage. An
// empty map encodes to the empty string.
func EncodeMicrosJSON(m model.Micronutrients) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal micronutrients: %w", err)
	}
	return string(raw), nil
}

// DecodeMicrosJSON parses a stored or remote micronutrient object. Unknown
// keys and non-finite or negative values are dropped rather than failing;
// a missing micronutrient is simply absent.
func DecodeMicrosJSON(value string) (model.Micronutrients, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	var decoded map[string]float64
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return nil, fmt.Errorf("micronutrients must be a JSON object of numbers: %w", err)
	}
	out := model.Micronutrients{}
	for rawKey, v := range decoded {
		key, ok := ParseMicroKey(rawKey)
		if !ok {
			continue
		}
		if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		out[key] = v
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
