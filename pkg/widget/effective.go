package widget

// EffectiveProps returns the first record for every property name, in the
// order of props. Because own records precede inherited ones, this is the
// set of properties a widget actually exposes after overriding.
func EffectiveProps(props []PropertyRecord) []PropertyRecord {
	seen := make(map[string]bool, len(props))
	out := make([]PropertyRecord, 0, len(props))
	for _, p := range props {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out
}
