package ranking

import "strings"

// NormalizeTag folds a skill or trait tag to the form used for comparison:
// lowercase, hyphens and underscores as spaces, single-spaced.
func NormalizeTag(tag string) string {
	if tag == "" {
		return ""
	}
	lower := strings.ToLower(tag)
	lower = strings.NewReplacer("-", " ", "_", " ").Replace(lower)
	return strings.Join(strings.Fields(lower), " ")
}

// normalizeSet normalizes tags and drops empties and duplicates, keeping
// first-seen order.
func normalizeSet(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func lookupSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		if n := NormalizeTag(t); n != "" {
			set[n] = true
		}
	}
	return set
}
