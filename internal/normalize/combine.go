package normalize

import "strings"

// combineFields joins the non-empty parts with a single space, in the order
// given, and collapses interior whitespace runs. Every adapter builds its
// description, counterparty and memo fields through this rule.
func combineFields(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(strings.Fields(strings.Join(kept, " ")), " ")
}
