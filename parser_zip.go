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
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
	"github.com/nicholasgasior/docbridge/transform"
)

// ZipParser handles ZIP archives by recursively parsing their entries
// and merging the resulting trees, each under a heading naming the
// entry. Entries no parser accepts are skipped.
type ZipParser struct {
	bridge *DocBridge
}

// NewZipParser creates a new ZipParser.
func NewZipParser(d *DocBridge) *ZipParser {
	return &ZipParser{bridge: d}
}

func (p *ZipParser) Accepts(info StreamInfo) bool {
	if info.Extension == ".zip" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(info.MIMEType), "application/zip")
}

func (p *ZipParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read ZIP: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, atStage(StageArchiveOpening, fmt.Errorf("open ZIP: %w", err))
	}

	filename := info.Filename
	if filename == "" {
		filename = "archive"
	}

	var parts []*ast.Document
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			continue
		}
		fileData, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		ext := strings.ToLower(filepath.Ext(f.Name))
		fileInfo := StreamInfo{
			Extension: ext,
			Filename:  filepath.Base(f.Name),
		}
		fileReader := bytes.NewReader(fileData)
		fileInfo.MIMEType = detectMIMEType(fileReader, ext)
		fileReader.Seek(0, io.SeekStart)

		sub, err := p.bridge.ConvertReader(fileReader, fileInfo)
		if err != nil {
			// Skip entries that can't be parsed
			continue
		}
		if len(sub.Children) == 0 {
			continue
		}

		part := ast.NewDocument()
		part.Children = append(part.Children, ast.NewHeading(1, &ast.Text{Literal: "File: " + f.Name}))
		part.Children = append(part.Children, sub.Children...)
		parts = append(parts, part)
	}

	doc := transform.MergeDocuments(parts, transform.LastWriteWins)
	doc.Meta[ast.MetaTitle] = filename
	return doc, nil
}
