package domain

import (
	"strconv"
	"strings"
)

// DispatchSettings is the value object handed to the matcher at call time.
// It is re-read from the settings store per invocation, never cached as a
// global.
type DispatchSettings struct {
	AutoDispatchEnabled bool
	// AdminChatIDs is the parsed notification fan-out list.
	AdminChatIDs []int64
}

// ParseAdminChatIDs parses the comma-delimited admin handle list stored in
// settings. Blank and malformed entries are dropped rather than failing the
// whole list.
func ParseAdminChatIDs(raw string) []int64 {
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
