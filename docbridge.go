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

// Package docbridge converts documents between markup formats through a
// shared tree: format parsers produce an ast.Document, renderers consume
// one. The engine picks the parser by priority, extension and sniffed
// MIME type, the way a converter registry would, but the unit of
// exchange is the tree, not rendered text.
package docbridge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/nicholasgasior/docbridge/ast"
)

const (
	// PrioritySpecific is for format-specific parsers (PDF, DOCX, etc.).
	PrioritySpecific = 0.0
	// PriorityGeneric is for fallback parsers (HTML, ZIP, plain text).
	PriorityGeneric = 10.0
)

type registeredParser struct {
	parser   Parser
	priority float64
	name     string
}

// DocBridge is the conversion engine: a prioritized parser registry plus
// a renderer registry keyed by output format name.
type DocBridge struct {
	parsers      []registeredParser
	renderers    map[string]Renderer
	keepDataURIs bool
	frontmatter  bool
}

// New creates a new DocBridge instance with the built-in parsers and
// renderers registered.
func New(opts ...Option) *DocBridge {
	d := &DocBridge{renderers: map[string]Renderer{}}
	for _, opt := range opts {
		opt(d)
	}
	d.enableBuiltins()
	return d
}

// RegisterParser adds a parser with the given priority. Lower priority
// values are tried first.
func (d *DocBridge) RegisterParser(name string, p Parser, priority float64) {
	d.parsers = append(d.parsers, registeredParser{
		parser:   p,
		priority: priority,
		name:     name,
	})
	sort.SliceStable(d.parsers, func(i, j int) bool {
		return d.parsers[i].priority < d.parsers[j].priority
	})
}

// RegisterRenderer adds or replaces the renderer for an output format
// name ("markdown", "html", "text", ...).
func (d *DocBridge) RegisterRenderer(format string, r Renderer) {
	d.renderers[format] = r
}

// Convert auto-detects the source type (file path or URL) and parses it
// into a document tree.
func (d *DocBridge) Convert(source string) (*ast.Document, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return d.ConvertURL(source)
	}
	return d.ConvertFile(source)
}

// ConvertFile parses a local file into a document tree.
func (d *DocBridge) ConvertFile(path string) (*ast.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	info := StreamInfo{
		Extension: ext,
		Filename:  filepath.Base(path),
		LocalPath: path,
	}
	info.MIMEType = detectMIMEType(f, ext)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}

	return d.ConvertReader(f, info)
}

// ConvertReader parses a stream using the provided StreamInfo.
func (d *DocBridge) ConvertReader(r io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	return d.parse(r, info)
}

// ConvertURL fetches a URL and parses the response body.
func (d *DocBridge) ConvertURL(url string) (*ast.Document, error) {
	resp, err := http.Get(url) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	reader := bytes.NewReader(data)
	info := StreamInfo{URL: url}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		parts := strings.Split(ct, ";")
		info.MIMEType = strings.TrimSpace(parts[0])
		for _, p := range parts[1:] {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "charset=") {
				info.Charset = strings.Trim(strings.TrimPrefix(p, "charset="), `"'`)
			}
		}
	}

	urlPath := strings.Split(url, "?")[0]
	info.Extension = strings.ToLower(filepath.Ext(urlPath))
	if info.Extension != "" {
		info.Filename = filepath.Base(urlPath)
	}
	if info.MIMEType == "" {
		info.MIMEType = detectMIMEType(reader, info.Extension)
		reader.Seek(0, io.SeekStart)
	}

	doc, err := d.ConvertReader(reader, info)
	if err != nil {
		return nil, err
	}
	if doc.Meta.String("source") == "" {
		doc.Meta["source"] = url
	}
	return doc, nil
}

// Render renders doc in the requested output format and post-processes
// the result.
func (d *DocBridge) Render(doc *ast.Document, format string) (string, error) {
	r, ok := d.renderers[format]
	if !ok {
		return "", &UnknownRendererError{Format: format}
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("%s [%s]: %w", format, StageRendering, err)
	}
	out := buf.String()
	if format != "html" {
		out = normalizeOutput(out)
	}
	return out, nil
}

// ConvertTo parses source and renders it in the requested format.
func (d *DocBridge) ConvertTo(source, format string) (string, error) {
	doc, err := d.Convert(source)
	if err != nil {
		return "", err
	}
	return d.Render(doc, format)
}

// Metadata extracts document metadata, using a parser's fast path when
// it offers one and falling back to a full parse.
func (d *DocBridge) Metadata(r io.ReadSeeker, info StreamInfo) (ast.Meta, error) {
	for _, rp := range d.parsers {
		if !rp.parser.Accepts(info) {
			continue
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}
		if mp, ok := rp.parser.(MetadataParser); ok {
			meta, err := mp.ParseMetadata(r, info)
			if err == nil {
				return meta, nil
			}
			// Fall through to the full parse on fast-path failure.
			if _, err := r.Seek(0, io.SeekStart); err != nil {
				return nil, fmt.Errorf("seek: %w", err)
			}
		}
		doc, err := rp.parser.Parse(r, info)
		if err != nil {
			continue
		}
		return doc.Meta, nil
	}
	return nil, &UnsupportedFormatError{Extension: info.Extension, MIMEType: info.MIMEType}
}

// parse is the internal dispatch method.
func (d *DocBridge) parse(r io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	var failed []FailedAttempt

	for _, rp := range d.parsers {
		if !rp.parser.Accepts(info) {
			continue
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}

		doc, err := rp.parser.Parse(r, info)
		if err != nil {
			failed = append(failed, FailedAttempt{
				Parser: rp.name,
				Stage:  stageOf(err),
				Err:    err,
			})
			continue
		}
		if doc.Meta == nil {
			doc.Meta = ast.Meta{}
		}
		return doc, nil
	}

	if len(failed) > 0 {
		return nil, &ConversionError{Attempts: failed}
	}
	return nil, &UnsupportedFormatError{
		Extension: info.Extension,
		MIMEType:  info.MIMEType,
	}
}

// stagedError lets a parser attribute its failure to a pipeline stage
// other than content parsing.
type stagedError struct {
	stage string
	err   error
}

func (e *stagedError) Error() string { return e.err.Error() }
func (e *stagedError) Unwrap() error { return e.err }

func atStage(stage string, err error) error {
	return &stagedError{stage: stage, err: err}
}

func stageOf(err error) string {
	var se *stagedError
	if errors.As(err, &se) {
		return se.stage
	}
	return StageContentParsing
}

// enableBuiltins registers all built-in parsers and renderers.
func (d *DocBridge) enableBuiltins() {
	// Specific format parsers (priority 0.0 - tried first)
	d.RegisterParser("markdown", NewMarkdownParser(), PrioritySpecific)
	d.RegisterParser("csv", NewCSVParser(), PrioritySpecific)
	d.RegisterParser("rss", NewRSSParser(), PrioritySpecific)
	d.RegisterParser("ipynb", NewIpynbParser(), PrioritySpecific)
	d.RegisterParser("docx", NewDocxParser(), PrioritySpecific)
	d.RegisterParser("xlsx", NewXlsxParser(), PrioritySpecific)
	d.RegisterParser("xls", NewXlsParser(), PrioritySpecific)
	d.RegisterParser("pdf", NewPDFParser(), PrioritySpecific)
	d.RegisterParser("epub", NewEpubParser(d), PrioritySpecific)

	// Generic format parsers (priority 10.0 - tried last as fallbacks)
	d.RegisterParser("html", NewHTMLParser(d), PriorityGeneric)
	d.RegisterParser("zip", NewZipParser(d), PriorityGeneric)
	d.RegisterParser("plaintext", NewPlainTextParser(), PriorityGeneric)

	d.RegisterRenderer("markdown", &MarkdownRenderer{Frontmatter: d.frontmatter})
	d.RegisterRenderer("html", &HTMLRenderer{})
	d.RegisterRenderer("text", &TextRenderer{})
}

// detectMIMEType detects the MIME type from content and extension.
func detectMIMEType(r io.ReadSeeker, ext string) string {
	mtype, err := mimetype.DetectReader(r)
	if err == nil && mtype.String() != "application/octet-stream" {
		return mtype.String()
	}
	return mimeFromExtension(ext)
}

// mimeFromExtension returns a MIME type for common extensions.
func mimeFromExtension(ext string) string {
	extMap := map[string]string{
		".pdf":      "application/pdf",
		".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".xlsx":     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".xls":      "application/vnd.ms-excel",
		".html":     "text/html",
		".htm":      "text/html",
		".csv":      "text/csv",
		".txt":      "text/plain",
		".text":     "text/plain",
		".md":       "text/markdown",
		".markdown": "text/markdown",
		".json":     "application/json",
		".jsonl":    "application/jsonl",
		".xml":      "text/xml",
		".rss":      "application/rss+xml",
		".atom":     "application/atom+xml",
		".epub":     "application/epub+zip",
		".zip":      "application/zip",
		".ipynb":    "application/x-ipynb+json",
	}
	if m, ok := extMap[ext]; ok {
		return m
	}
	return "application/octet-stream"
}
