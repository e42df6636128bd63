package normalizer

import (
	"fmt"
	"strings"
	"time"

	"nft-recon/internal/domain"
	"nft-recon/internal/provider"
)

// LootexLegacyOffset is the +8h shift the first version of this tool applied
// after dropping the UTC marker from Lootex timestamps. It is only used when
// configured explicitly; the default is plain UTC parsing.
const LootexLegacyOffset = 8 * time.Hour

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// isoTimestamp parses an ISO-8601 string as UTC (zone-less input is taken to be
// UTC), shifts it by offset and renders it canonically.
func isoTimestamp(raw provider.RawEvent, offset time.Duration, key string) (Field, error) {
	f := stringField(raw, key)
	if !f.OK {
		return missing, nil
	}
	s := strings.TrimSpace(f.Value)
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return present(domain.FormatTimestamp(t.Add(offset))), nil
		}
	}
	return missing, fmt.Errorf("%s: invalid timestamp %q", key, f.Value)
}

// epochTimestamp converts epoch seconds to the canonical UTC rendering.
func epochTimestamp(raw provider.RawEvent, key string) (Field, error) {
	n, ok, err := intField(raw, key)
	if err != nil {
		return missing, err
	}
	if !ok {
		return missing, nil
	}
	return present(domain.FormatTimestamp(time.Unix(n, 0))), nil
}
