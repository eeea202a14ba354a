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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
)

// IpynbParser handles Jupyter notebooks. Markdown cells run through the
// markdown pipeline; code cells and their textual outputs become code
// blocks.
type IpynbParser struct{}

// NewIpynbParser creates a new IpynbParser.
func NewIpynbParser() *IpynbParser {
	return &IpynbParser{}
}

type notebook struct {
	Cells    []notebookCell `json:"cells"`
	Metadata struct {
		Kernelspec struct {
			Language string `json:"language"`
			Name     string `json:"name"`
		} `json:"kernelspec"`
		LanguageInfo struct {
			Name string `json:"name"`
		} `json:"language_info"`
		Title string `json:"title"`
	} `json:"metadata"`
	NBFormat int `json:"nbformat"`
}

type notebookCell struct {
	CellType string           `json:"cell_type"`
	Source   notebookSource   `json:"source"`
	Outputs  []notebookOutput `json:"outputs"`
}

type notebookOutput struct {
	OutputType string                    `json:"output_type"`
	Text       notebookSource            `json:"text"`
	Data       map[string]notebookSource `json:"data"`
	Traceback  []string                  `json:"traceback"`
}

// notebookSource handles the format's two spellings of cell content: a
// single string or a list of line strings.
type notebookSource string

func (s *notebookSource) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = notebookSource(str)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*s = notebookSource(strings.Join(lines, ""))
	return nil
}

func (p *IpynbParser) Accepts(info StreamInfo) bool {
	if info.Extension == ".ipynb" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(info.MIMEType), "application/x-ipynb")
}

func (p *IpynbParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("parse notebook JSON: %w", err)
	}

	lang := nb.Metadata.LanguageInfo.Name
	if lang == "" {
		lang = nb.Metadata.Kernelspec.Language
	}

	doc := ast.NewDocument()
	if nb.Metadata.Title != "" {
		doc.Meta[ast.MetaTitle] = nb.Metadata.Title
	}

	for _, cell := range nb.Cells {
		src := string(cell.Source)
		switch cell.CellType {
		case "markdown":
			sub, err := parseMarkdown([]byte(src))
			if err != nil {
				return nil, err
			}
			doc.Children = append(doc.Children, sub.Children...)
		case "code":
			if strings.TrimSpace(src) != "" {
				doc.Children = append(doc.Children, &ast.CodeBlock{
					Language: lang,
					Literal:  src,
				})
			}
			for _, out := range cell.Outputs {
				if text := outputText(out); text != "" {
					doc.Children = append(doc.Children, &ast.CodeBlock{Literal: text})
				}
			}
		case "raw":
			if strings.TrimSpace(src) != "" {
				doc.Children = append(doc.Children, ast.NewParagraph(src))
			}
		}
	}
	return doc, nil
}

// outputText extracts the textual representation of a cell output.
func outputText(out notebookOutput) string {
	switch out.OutputType {
	case "stream":
		return string(out.Text)
	case "execute_result", "display_data":
		return string(out.Data["text/plain"])
	case "error":
		return strings.Join(out.Traceback, "\n")
	}
	return ""
}
