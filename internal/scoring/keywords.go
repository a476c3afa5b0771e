package scoring

import "strings"

// NormalizeKeywords merges keyword lists into one ordered list. Entries are
// deduplicated by their lower-cased form; the first-seen casing is kept and
// blank entries are dropped. Nil lists are treated as empty.
func NormalizeKeywords(lists ...[]string) []string {
	total := 0
	for _, list := range lists {
		total += len(list)
	}
	out := make([]string, 0, total)
	seen := make(map[string]struct{}, total)
	for _, list := range lists {
		for _, raw := range list {
			keyword := strings.TrimSpace(raw)
			if keyword == "" {
				continue
			}
			key := strings.ToLower(keyword)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, keyword)
		}
	}
	return out
}

// distinctKeywords is NormalizeKeywords for a single list, except that it
// returns the input elements untouched so results stay a subsequence of it.
func distinctKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, raw := range keywords {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, raw)
	}
	return out
}
