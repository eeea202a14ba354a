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
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"

	"github.com/nicholasgasior/docbridge/ast"
	"github.com/nicholasgasior/docbridge/transform"
)

// HTMLParser handles HTML files. The markup is reduced to commonmark
// first and the markdown parser builds the tree, so both paths produce
// identical structures for equivalent content.
type HTMLParser struct {
	bridge *DocBridge
}

// NewHTMLParser creates a new HTMLParser.
func NewHTMLParser(d *DocBridge) *HTMLParser {
	return &HTMLParser{bridge: d}
}

func (p *HTMLParser) Accepts(info StreamInfo) bool {
	switch info.Extension {
	case ".html", ".htm":
		return true
	}
	mime := strings.ToLower(info.MIMEType)
	return strings.HasPrefix(mime, "text/html") || strings.HasPrefix(mime, "application/xhtml")
}

func (p *HTMLParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return p.ParseString(decodeText(data, info.Charset))
}

// ParseString parses an HTML string into a document tree.
func (p *HTMLParser) ParseString(htmlStr string) (*ast.Document, error) {
	meta := extractHTMLMeta(htmlStr)

	htmlStr = removeScriptAndStyle(htmlStr)

	md, err := convertHTMLToMarkdown(htmlStr)
	if err != nil {
		return nil, fmt.Errorf("reduce HTML to markdown: %w", err)
	}

	doc, err := parseMarkdown([]byte(md))
	if err != nil {
		return nil, err
	}
	for k, v := range meta {
		doc.Meta[k] = v
	}

	keepDataURIs := p.bridge != nil && p.bridge.keepDataURIs
	if !keepDataURIs {
		doc, err = transform.Apply(doc, transform.Func(truncateDataURINode))
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ParseMetadata extracts <title> and <meta> tags without building the tree.
func (p *HTMLParser) ParseMetadata(reader io.ReadSeeker, info StreamInfo) (ast.Meta, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return extractHTMLMeta(decodeText(data, info.Charset)), nil
}

// convertHTMLToMarkdown reduces HTML to commonmark text.
func convertHTMLToMarkdown(htmlStr string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle("atx"),
			),
			table.NewTablePlugin(),
		),
	)
	return conv.ConvertString(htmlStr)
}

var (
	reScript  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	reStyle   = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	reDataURI = regexp.MustCompile(`^(data:[a-zA-Z0-9/+.-]+;base64,)[A-Za-z0-9+/=]{64,}$`)
)

// removeScriptAndStyle removes <script> and <style> tags and their content.
func removeScriptAndStyle(htmlStr string) string {
	htmlStr = reScript.ReplaceAllString(htmlStr, "")
	htmlStr = reStyle.ReplaceAllString(htmlStr, "")
	return htmlStr
}

// truncateDataURINode shortens large base64 data URIs carried in image
// and link URLs to data:mime/type;base64...
func truncateDataURINode(n ast.Node) (ast.Node, error) {
	switch v := n.(type) {
	case *ast.Image:
		v.URL = reDataURI.ReplaceAllString(v.URL, "${1}...")
	case *ast.Link:
		v.URL = reDataURI.ReplaceAllString(v.URL, "${1}...")
	}
	return n, nil
}

// extractHTMLMeta pulls the title and standard meta tags from an HTML
// document into a metadata mapping.
func extractHTMLMeta(htmlStr string) ast.Meta {
	meta := ast.Meta{}
	root, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return meta
	}

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && meta.String(ast.MetaTitle) == "" {
					meta[ast.MetaTitle] = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var name, content string
				for _, a := range n.Attr {
					switch a.Key {
					case "name":
						name = strings.ToLower(a.Val)
					case "content":
						content = a.Val
					}
				}
				if content == "" {
					break
				}
				switch name {
				case "author":
					meta[ast.MetaAuthor] = content
				case "keywords":
					meta[ast.MetaKeywords] = content
				case "description":
					meta["description"] = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return meta
}
