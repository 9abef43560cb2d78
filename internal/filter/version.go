package filter

import (
	"strconv"
	"strings"
)

// CompareVersions orders dotted version strings segment by segment as
// integers. Non-numeric segments count as 0 and missing segments are 0, so
// "1.20" == "1.20.0".
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := segmentValue(as, i), segmentValue(bs, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func segmentValue(parts []string, i int) int64 {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
