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
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns heading text into a URL-safe anchor: accents stripped,
// lowercased, whitespace and underscores become hyphens, everything else
// non-alphanumeric dropped, hyphen runs collapsed. An empty result falls
// back to "section".
func Slugify(text string) string {
	s, _, err := transform.String(deaccent, text)
	if err != nil {
		s = text
	}
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '_':
			b.WriteByte('-')
		case r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	s = b.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "section"
	}
	return s
}

// UniqueSlug slugifies text and resolves collisions against seen by
// appending -2, -3, ... (first unused suffix). The chosen slug is added
// to seen before returning: the mutation threads uniqueness state
// through one TOC-generation pass, so callers must not share a set
// across unrelated generations unless cross-document uniqueness is
// wanted.
func UniqueSlug(text string, seen map[string]struct{}) string {
	slug := Slugify(text)
	if seen == nil {
		return slug
	}
	candidate := slug
	for i := 2; ; i++ {
		if _, taken := seen[candidate]; !taken {
			break
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
	seen[candidate] = struct{}{}
	return candidate
}
