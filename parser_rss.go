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

	"github.com/mmcdole/gofeed"

	"github.com/nicholasgasior/docbridge/ast"
)

// RSSParser handles RSS and Atom feeds. The feed title becomes the
// top-level heading, each item a level-2 section; item bodies are HTML
// in most feeds and are funneled through the markdown pipeline.
type RSSParser struct{}

// NewRSSParser creates a new RSSParser.
func NewRSSParser() *RSSParser {
	return &RSSParser{}
}

func (p *RSSParser) Accepts(info StreamInfo) bool {
	switch info.Extension {
	case ".rss", ".atom":
		return true
	}
	mime := strings.ToLower(info.MIMEType)
	return strings.Contains(mime, "rss") || strings.Contains(mime, "atom")
}

func (p *RSSParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	feed, err := gofeed.NewParser().Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	doc := ast.NewDocument()
	if feed.Title != "" {
		doc.Meta[ast.MetaTitle] = feed.Title
		doc.Children = append(doc.Children, ast.NewHeading(1, &ast.Text{Literal: feed.Title}))
	}
	if feed.Description != "" {
		doc.Children = append(doc.Children, ast.NewParagraph(feed.Description))
	}

	for _, item := range feed.Items {
		title := item.Title
		if title == "" {
			title = item.Link
		}
		doc.Children = append(doc.Children, ast.NewHeading(2, &ast.Text{Literal: title}))

		if item.Published != "" {
			doc.Children = append(doc.Children, ast.NewParagraph("Published: "+item.Published))
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}
		if body != "" {
			blocks, err := feedBodyBlocks(body)
			if err != nil {
				return nil, err
			}
			doc.Children = append(doc.Children, blocks...)
		}

		if item.Link != "" {
			doc.Children = append(doc.Children, &ast.Paragraph{Content: []ast.Inline{
				&ast.Link{
					URL:     item.Link,
					Content: []ast.Inline{&ast.Text{Literal: item.Link}},
				},
			}})
		}
	}
	return doc, nil
}

// feedBodyBlocks converts an item body, which may be HTML or plain
// text, into block nodes.
func feedBodyBlocks(body string) ([]ast.Block, error) {
	if strings.ContainsAny(body, "<>") {
		md, err := convertHTMLToMarkdown(body)
		if err == nil {
			body = md
		}
	}
	sub, err := parseMarkdown([]byte(body))
	if err != nil {
		return nil, err
	}
	return sub.Children, nil
}
