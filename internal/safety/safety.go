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

// Package safety classifies URLs and user-supplied regular expressions
// before transforms act on them.
package safety

import (
	"fmt"
	"regexp"
	"strings"
)

// maxURLInError bounds how much of an offending URL an error message
// repeats back to the caller.
const maxURLInError = 64

var safeSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"ftp":    true,
	"ftps":   true,
	"tel":    true,
}

var dangerousSchemes = map[string]bool{
	"javascript": true,
	"vbscript":   true,
	"data":       true,
	"file":       true,
}

// CheckURL reports an error when the URL uses a dangerous or unrecognized
// scheme. Scheme-relative, host-relative and fragment-only URLs pass.
func CheckURL(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	// Relative references have no scheme to judge.
	if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") {
		return nil
	}
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return nil
	}
	scheme := strings.ToLower(s[:i])
	// A colon inside a path segment is not a scheme separator.
	if strings.ContainsAny(scheme, "/?#") {
		return nil
	}
	if dangerousSchemes[scheme] {
		return fmt.Errorf("dangerous URL scheme %q in %q", scheme, truncate(s))
	}
	if !safeSchemes[scheme] {
		return fmt.Errorf("unrecognized URL scheme %q in %q", scheme, truncate(s))
	}
	return nil
}

func truncate(s string) string {
	if len(s) <= maxURLInError {
		return s
	}
	return s[:maxURLInError] + "..."
}

const maxPatternLength = 1000

// Repeated quantified groups like (a+)+ or (a*){2,} are the classic
// catastrophic-backtracking shapes in backtracking engines. Go's RE2 is
// immune, but patterns may be persisted and handed to other engines, so
// they are rejected anyway.
var nestedQuantifier = regexp.MustCompile(`\([^)]*[+*][^)]*\)[+*{]`)

// CheckPattern validates a user-supplied regular expression before it is
// compiled into a transform.
func CheckPattern(pattern string) error {
	if len(pattern) > maxPatternLength {
		return fmt.Errorf("pattern too long: %d bytes (limit %d)", len(pattern), maxPatternLength)
	}
	if nestedQuantifier.MatchString(pattern) {
		return fmt.Errorf("pattern %q contains a nested quantifier prone to catastrophic backtracking", truncate(pattern))
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	return nil
}
