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
	"io"

	"github.com/nicholasgasior/docbridge/ast"
)

// StreamInfo holds metadata about the input being parsed.
type StreamInfo struct {
	MIMEType  string
	Extension string
	Charset   string
	Filename  string
	LocalPath string
	URL       string
}

// Parser is the contract every format plugin implements: given raw
// bytes, produce a document tree.
type Parser interface {
	// Accepts returns true if this parser can handle the given input.
	// It MUST NOT change the read position of reader.
	Accepts(info StreamInfo) bool

	// Parse builds the document tree from the input.
	Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error)
}

// MetadataParser is an optional fast path a Parser may implement to
// extract document metadata without building the full tree.
type MetadataParser interface {
	ParseMetadata(reader io.ReadSeeker, info StreamInfo) (ast.Meta, error)
}

// Renderer consumes a document tree and writes rendered output. Node
// kinds a renderer has no native markup for must follow its documented
// fallback policy (the built-in renderers flatten them to inner text)
// rather than fail.
type Renderer interface {
	Render(w io.Writer, doc *ast.Document) error
}
