// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package section

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseRanges parses a comma-separated, 1-based range spec like
// "1-3,5,10-" into sorted, de-duplicated 0-based indexes clipped to
// [0, total). A trailing open range runs to the last section. A reversed
// range such as "10-5" is deliberately tolerated and normalized by
// swapping its endpoints.
func ParseRanges(spec string, total int) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty section range spec")
	}
	picked := map[int]struct{}{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty range in spec %q", spec)
		}
		start, end, err := parseRange(part, total)
		if err != nil {
			return nil, err
		}
		if start > end {
			start, end = end, start
		}
		for i := start; i <= end; i++ {
			if i >= 1 && i <= total {
				picked[i-1] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(picked))
	for i := range picked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

func parseRange(part string, total int) (int, int, error) {
	dash := strings.IndexByte(part, '-')
	if dash < 0 {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid section number %q", part)
		}
		return n, n, nil
	}
	startStr := strings.TrimSpace(part[:dash])
	endStr := strings.TrimSpace(part[dash+1:])
	if startStr == "" {
		return 0, 0, fmt.Errorf("invalid range %q: missing start", part)
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q", startStr)
	}
	if endStr == "" {
		// Open range: through the last section.
		return start, total, nil
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q", endStr)
	}
	return start, end, nil
}
