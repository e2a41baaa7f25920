package config

import "encoding/json"

func group(raw map[string]any, key string) map[string]any {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	g, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return g
}

func getBool(g map[string]any, key string, def bool) bool {
	v, ok := g[key]
	if !ok || v == nil {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

func getInt(g map[string]any, key string, def int) int {
	v, ok := g[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return def
		}
		return int(n)
	default:
		return def
	}
}

func getIntSlice(g map[string]any, key string) []int {
	v, ok := g[key]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(arr))
	for _, it := range arr {
		switch t := it.(type) {
		case float64:
			out = append(out, int(t))
		case int:
			out = append(out, t)
		}
	}
	return out
}

func getSlots(g map[string]any, key string) []Slot {
	v, ok := g[key]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Slot, 0, len(arr))
	for _, it := range arr {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Slot{Day: getInt(m, "day", 0), Hour: getInt(m, "hour", 0)})
	}
	return out
}

func getSlotsByKey(g map[string]any, key string) map[string][]Slot {
	v, ok := g[key]
	if !ok || v == nil {
		return map[string][]Slot{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string][]Slot{}
	}
	out := make(map[string][]Slot, len(m))
	for teacherID, raw := range m {
		arr, ok := raw.([]any)
		if !ok {
			continue
		}
		slots := make([]Slot, 0, len(arr))
		for _, it := range arr {
			sm, ok := it.(map[string]any)
			if !ok {
				continue
			}
			slots = append(slots, Slot{Day: getInt(sm, "day", 0), Hour: getInt(sm, "hour", 0)})
		}
		out[teacherID] = slots
	}
	return out
}

func getOverrides(g map[string]any, key string) map[string]BoundaryOverride {
	v, ok := g[key]
	if !ok || v == nil {
		return map[string]BoundaryOverride{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]BoundaryOverride{}
	}
	out := make(map[string]BoundaryOverride, len(m))
	for teacherID, raw := range m {
		om, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		var ov BoundaryOverride
		if b, ok := om["avoidFirstPeriod"].(bool); ok {
			ov.AvoidFirstPeriod = &b
		}
		if b, ok := om["avoidLastPeriod"].(bool); ok {
			ov.AvoidLastPeriod = &b
		}
		out[teacherID] = ov
	}
	return out
}

func clampMin1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func clampMin0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
