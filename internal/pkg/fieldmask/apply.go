package fieldmask

// Apply copies every masked path from src into dst. A path that is absent
// from src is removed from dst. Intermediate objects are created in dst as
// needed. Values are shared with src, not copied.
func Apply(dst, src map[string]any, paths []Path) {
	for _, p := range paths {
		segs := p.Segments()
		if len(segs) == 0 {
			continue
		}
		if v, ok := lookup(src, segs); ok {
			set(dst, segs, v)
		} else {
			remove(dst, segs)
		}
	}
}

func lookup(m map[string]any, segs []string) (any, bool) {
	cur := m
	for i, s := range segs {
		v, ok := cur[s]
		if !ok {
			return nil, false
		}
		if i == len(segs)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

func set(m map[string]any, segs []string, v any) {
	cur := m
	for _, s := range segs[:len(segs)-1] {
		next, ok := cur[s].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[s] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = v
}

func remove(m map[string]any, segs []string) {
	cur := m
	for _, s := range segs[:len(segs)-1] {
		next, ok := cur[s].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, segs[len(segs)-1])
}
