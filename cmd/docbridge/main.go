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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	docbridge "github.com/nicholasgasior/docbridge"
	"github.com/nicholasgasior/docbridge/ast"
	"github.com/nicholasgasior/docbridge/section"
	"github.com/nicholasgasior/docbridge/transform"
)

var version = "dev"

func main() {
	var (
		output        string
		format        string
		extension     string
		mimeType      string
		charset       string
		showVersion   bool
		keepDataURIs  bool
		frontmatter   bool
		toc           bool
		tocStyle      string
		tocDepth      int
		sections      string
		shiftHeadings int
	)

	flag.StringVar(&output, "o", "", "Output file (default: stdout)")
	flag.StringVar(&output, "output", "", "Output file (default: stdout)")
	flag.StringVar(&format, "t", "markdown", "Output format: markdown, html, text")
	flag.StringVar(&format, "to", "markdown", "Output format: markdown, html, text")
	flag.StringVar(&extension, "x", "", "File extension hint (for stdin input)")
	flag.StringVar(&extension, "extension", "", "File extension hint (for stdin input)")
	flag.StringVar(&mimeType, "m", "", "MIME type hint")
	flag.StringVar(&mimeType, "mime-type", "", "MIME type hint")
	flag.StringVar(&charset, "c", "", "Charset hint")
	flag.StringVar(&charset, "charset", "", "Charset hint")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&keepDataURIs, "keep-data-uris", false, "Keep full base64-encoded data URIs")
	flag.BoolVar(&frontmatter, "frontmatter", false, "Emit document metadata as YAML frontmatter (markdown output)")
	flag.BoolVar(&toc, "toc", false, "Insert a table of contents")
	flag.StringVar(&tocStyle, "toc-style", "nested", "TOC style: markdown, list, nested")
	flag.IntVar(&tocDepth, "toc-depth", 3, "Deepest heading level in the TOC")
	flag.StringVar(&sections, "sections", "", "Keep only these sections, e.g. \"1-3,5,10-\" (1-based)")
	flag.IntVar(&shiftHeadings, "shift-headings", 0, "Shift every heading level by this offset")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docbridge [flags] [source]\n\n")
		fmt.Fprintf(os.Stderr, "Convert documents between markup formats.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  source    File path or URL to convert (reads stdin if omitted)\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("docbridge %s\n", version)
		os.Exit(0)
	}

	// Normalize extension
	if extension != "" {
		extension = strings.ToLower(extension)
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}
	}

	var opts []docbridge.Option
	if keepDataURIs {
		opts = append(opts, docbridge.WithKeepDataURIs(true))
	}
	if frontmatter {
		opts = append(opts, docbridge.WithFrontmatter(true))
	}
	d := docbridge.New(opts...)

	doc, err := parseSource(d, flag.Args(), extension, mimeType, charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	doc, err = applyPipeline(doc, shiftHeadings, sections, toc, tocStyle, tocDepth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := d.Render(doc, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if output != "" {
		dir := filepath.Dir(output)
		if dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		if writeErr := os.WriteFile(output, []byte(result+"\n"), 0o644); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", writeErr)
			os.Exit(1)
		}
	} else {
		fmt.Println(result)
	}
}

func parseSource(d *docbridge.DocBridge, args []string, extension, mimeType, charset string) (*ast.Document, error) {
	if len(args) > 0 {
		return d.Convert(args[0])
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	info := docbridge.StreamInfo{
		Extension: extension,
		MIMEType:  mimeType,
		Charset:   charset,
	}
	return d.ConvertReader(strings.NewReader(string(data)), info)
}

// applyPipeline runs the tree-level options between parse and render:
// heading shift first, then section selection, then TOC insertion, so
// the TOC reflects the document it ends up in.
func applyPipeline(doc *ast.Document, shiftHeadings int, sections string, toc bool, tocStyle string, tocDepth int) (*ast.Document, error) {
	var err error

	if shiftHeadings != 0 {
		doc, err = transform.Apply(doc, transform.NewHeadingLevelShift(shiftHeadings))
		if err != nil {
			return nil, fmt.Errorf("shift headings: %w", err)
		}
	}

	if sections != "" {
		doc, err = selectSections(doc, sections)
		if err != nil {
			return nil, fmt.Errorf("select sections: %w", err)
		}
	}

	if toc {
		doc, err = section.InsertTOC(doc, section.TOCAtStart, tocDepth, section.TOCStyle(tocStyle))
		if err != nil {
			return nil, fmt.Errorf("insert TOC: %w", err)
		}
	}

	return doc, nil
}

// selectSections keeps only the sections named by a 1-based range spec,
// preamble included.
func selectSections(doc *ast.Document, spec string) (*ast.Document, error) {
	secs := section.Sections(doc)
	idxs, err := section.ParseRanges(spec, len(secs))
	if err != nil {
		return nil, err
	}

	out := &ast.Document{Meta: doc.Meta.Clone()}
	if out.Meta == nil {
		out.Meta = ast.Meta{}
	}
	out.Children = append(out.Children, section.Preamble(doc)...)
	for _, i := range idxs {
		s := secs[i]
		out.Children = append(out.Children, doc.Children[s.Start:s.End]...)
	}
	return out, nil
}
