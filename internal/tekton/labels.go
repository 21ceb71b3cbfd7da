package tekton

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// FormatLabels renders labels as "key: value" strings sorted by key.
func FormatLabels(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %s", k, labels[k]))
	}
	return out
}

// ErrorMessage extracts a displayable message from an arbitrary error value
// as returned by an API client: strings pass through, errors yield their
// message, and anything else is JSON-encoded. A nil value yields "".
func ErrorMessage(v any) string {
	switch e := v.(type) {
	case nil:
		return ""
	case string:
		return e
	case error:
		return e.Error()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// GenerateID returns prefix followed by a short base-36 digest of seed. The
// same seed always yields the same id.
func GenerateID(prefix, seed string) string {
	return prefix + strconv.FormatUint(xxhash.Sum64String(seed), 36)
}
