package domain

import (
	"sort"
	"strings"
)

// Chain pairs the numeric chain ID used by Lootex with the slug OpenSea expects.
type Chain struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// chainIDToSlug is the table both directions of TranslateChain are derived from.
var chainIDToSlug = map[string]string{
	"1":    "ethereum",
	"137":  "matic",
	"8453": "base",
}

var chainSlugToID = func() map[string]string {
	m := make(map[string]string, len(chainIDToSlug))
	for id, slug := range chainIDToSlug {
		m[slug] = id
	}
	return m
}()

// TranslateChain resolves user input (numeric ID or slug) into the canonical
// chain ID and the OpenSea slug. Unknown input is passed through unchanged to
// both outputs so chains missing from the table can still be queried.
func TranslateChain(input string) (chainID, slug string) {
	in := strings.ToLower(strings.TrimSpace(input))
	if s, ok := chainIDToSlug[in]; ok {
		return in, s
	}
	if isAlpha(in) {
		if id, ok := chainSlugToID[in]; ok {
			return id, chainIDToSlug[id]
		}
	}
	return in, in
}

// KnownChain reports whether input is an ID or slug in the translation table.
func KnownChain(input string) bool {
	in := strings.ToLower(strings.TrimSpace(input))
	_, byID := chainIDToSlug[in]
	_, bySlug := chainSlugToID[in]
	return byID || bySlug
}

// SupportedChains lists the translation table ordered by numeric ID.
func SupportedChains() []Chain {
	chains := make([]Chain, 0, len(chainIDToSlug))
	for id, slug := range chainIDToSlug {
		chains = append(chains, Chain{ID: id, Slug: slug})
	}
	sort.Slice(chains, func(i, j int) bool {
		if len(chains[i].ID) != len(chains[j].ID) {
			return len(chains[i].ID) < len(chains[j].ID)
		}
		return chains[i].ID < chains[j].ID
	})
	return chains
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
