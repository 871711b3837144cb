package production

// Reconcile merges the owned and shared project collections into one
// deduplicated set keyed by project ID. When a project appears in both, the
// owned record is authoritative and only the sharing metadata is taken from
// the shared copy, with AlsoShared set. Shared-only projects keep IsShared.
//
// Output order is owned insertion order followed by shared-only insertion
// order, so repeated calls with identical inputs produce identical results
// and downstream filter/sort stays reproducible.
func Reconcile(owned []Project, shared []SharedProject) []Project {
	out := make([]Project, 0, len(owned)+len(shared))
	ownedIndex := make(map[string]int, len(owned))
	seen := make(map[string]bool, len(owned)+len(shared))

	for _, p := range owned {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ownedIndex[p.ID] = len(out)
		out = append(out, p)
	}

	for _, sp := range shared {
		if i, ok := ownedIndex[sp.ID]; ok {
			out[i].AlsoShared = true
			if out[i].ShareToken == "" {
				out[i].ShareToken = sp.ShareInfo.ShareToken
			}
			continue
		}
		if seen[sp.ID] {
			continue
		}
		seen[sp.ID] = true
		p := sp.Project
		p.IsShared = true
		if p.ShareToken == "" {
			p.ShareToken = sp.ShareInfo.ShareToken
		}
		out = append(out, p)
	}

	return out
}
