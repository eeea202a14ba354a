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

package docbridge

import (
	"fmt"
	"io"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
)

// PlainTextParser is the last-resort parser for text streams. Blank
// lines separate paragraphs; JSON inputs become a single code block so
// renderers preserve their structure.
type PlainTextParser struct{}

// NewPlainTextParser creates a new PlainTextParser.
func NewPlainTextParser() *PlainTextParser {
	return &PlainTextParser{}
}

func (p *PlainTextParser) Accepts(info StreamInfo) bool {
	switch info.Extension {
	case ".txt", ".text", ".json", ".jsonl", ".log":
		return true
	}
	mime := strings.ToLower(info.MIMEType)
	return strings.HasPrefix(mime, "text/") ||
		strings.HasPrefix(mime, "application/json")
}

func (p *PlainTextParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	text := decodeText(data, info.Charset)

	doc := ast.NewDocument()
	if isJSONStream(info) {
		doc.Children = append(doc.Children, &ast.CodeBlock{
			Language: "json",
			Literal:  text,
		})
		return doc, nil
	}

	for _, para := range splitParagraphs(text) {
		doc.Children = append(doc.Children, ast.NewParagraph(para))
	}
	return doc, nil
}

func isJSONStream(info StreamInfo) bool {
	switch info.Extension {
	case ".json", ".jsonl":
		return true
	}
	return strings.HasPrefix(strings.ToLower(info.MIMEType), "application/json")
}

// splitParagraphs splits text on blank lines, trimming each chunk.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, chunk := range strings.Split(text, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			out = append(out, chunk)
		}
	}
	return out
}
