package docbridge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
)

// EpubParser handles EPUB books: OPF metadata becomes document
// metadata, spine chapters run through the HTML pipeline in reading
// order.
type EpubParser struct {
	bridge *DocBridge
}

// NewEpubParser creates a new EpubParser.
func NewEpubParser(d *DocBridge) *EpubParser {
	return &EpubParser{bridge: d}
}

func (p *EpubParser) Accepts(info StreamInfo) bool {
	if info.Extension == ".epub" {
		return true
	}
	mime := strings.ToLower(info.MIMEType)
	return strings.HasPrefix(mime, "application/epub") ||
		strings.HasPrefix(mime, "application/x-epub+zip")
}

func (p *EpubParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read EPUB: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, atStage(StageArchiveOpening, fmt.Errorf("open EPUB ZIP: %w", err))
	}

	opfPath, err := findOPFPath(zr)
	if err != nil {
		return nil, atStage(StageArchiveOpening, fmt.Errorf("find OPF: %w", err))
	}

	metadata, manifest, spine, err := parseOPF(zr, opfPath)
	if err != nil {
		return nil, atStage(StageMetadata, fmt.Errorf("parse OPF: %w", err))
	}

	doc := ast.NewDocument()
	if metadata.title != "" {
		doc.Meta[ast.MetaTitle] = metadata.title
		doc.Children = append(doc.Children, ast.NewHeading(1, &ast.Text{Literal: metadata.title}))
	}
	if len(metadata.authors) > 0 {
		doc.Meta[ast.MetaAuthor] = strings.Join(metadata.authors, ", ")
	}
	if metadata.date != "" {
		doc.Meta[ast.MetaDate] = metadata.date
	}
	if metadata.language != "" {
		doc.Meta["language"] = metadata.language
	}
	if metadata.publisher != "" {
		doc.Meta["publisher"] = metadata.publisher
	}
	if metadata.description != "" {
		doc.Meta["description"] = metadata.description
	}
	if metadata.identifier != "" {
		doc.Meta["identifier"] = metadata.identifier
	}

	// Process spine items in reading order
	opfDir := path.Dir(opfPath)
	htmlParser := NewHTMLParser(p.bridge)

	for _, itemRef := range spine {
		item, ok := manifest[itemRef]
		if !ok {
			continue
		}

		filePath := item.href
		if opfDir != "." && !strings.HasPrefix(filePath, "/") {
			filePath = opfDir + "/" + filePath
		}

		fileData, err := readZipFile(zr, filePath)
		if err != nil {
			continue
		}

		ext := strings.ToLower(path.Ext(filePath))
		isHTML := ext == ".html" || ext == ".htm" || ext == ".xhtml" ||
			strings.Contains(item.mediaType, "html") || strings.Contains(item.mediaType, "xhtml")
		if !isHTML {
			continue
		}

		chapter, err := htmlParser.ParseString(string(fileData))
		if err != nil {
			continue
		}
		doc.Children = append(doc.Children, chapter.Children...)
	}

	return doc, nil
}

// ParseMetadata reads only container.xml and the OPF, skipping chapters.
func (p *EpubParser) ParseMetadata(reader io.ReadSeeker, info StreamInfo) (ast.Meta, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read EPUB: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open EPUB ZIP: %w", err)
	}
	opfPath, err := findOPFPath(zr)
	if err != nil {
		return nil, fmt.Errorf("find OPF: %w", err)
	}
	metadata, _, _, err := parseOPF(zr, opfPath)
	if err != nil {
		return nil, fmt.Errorf("parse OPF: %w", err)
	}

	meta := ast.Meta{}
	if metadata.title != "" {
		meta[ast.MetaTitle] = metadata.title
	}
	if len(metadata.authors) > 0 {
		meta[ast.MetaAuthor] = strings.Join(metadata.authors, ", ")
	}
	if metadata.date != "" {
		meta[ast.MetaDate] = metadata.date
	}
	return meta, nil
}

type epubMetadata struct {
	title       string
	authors     []string
	language    string
	publisher   string
	date        string
	description string
	identifier  string
}

type manifestItem struct {
	id        string
	href      string
	mediaType string
}

// readZipFile reads a single named entry from a ZIP archive.
func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("file %q not found in archive", name)
}

// findOPFPath finds the OPF file path from META-INF/container.xml.
func findOPFPath(zr *zip.Reader) (string, error) {
	data, err := readZipFile(zr, "META-INF/container.xml")
	if err != nil {
		return "", err
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local == "rootfile" {
				for _, attr := range se.Attr {
					if attr.Name.Local == "full-path" {
						return attr.Value, nil
					}
				}
			}
		}
	}

	return "", fmt.Errorf("rootfile not found in container.xml")
}

// parseOPF parses the OPF file for metadata, manifest, and spine.
func parseOPF(zr *zip.Reader, opfPath string) (epubMetadata, map[string]manifestItem, []string, error) {
	data, err := readZipFile(zr, opfPath)
	if err != nil {
		return epubMetadata{}, nil, nil, err
	}

	var meta epubMetadata
	manifest := make(map[string]manifestItem)
	var spine []string

	decoder := xml.NewDecoder(bytes.NewReader(data))

	var inMetadata bool
	var currentTag string

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "metadata":
				inMetadata = true

			case "title", "creator", "language", "publisher", "date", "description", "identifier":
				if inMetadata {
					currentTag = t.Name.Local
				}

			case "item":
				var item manifestItem
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "id":
						item.id = attr.Value
					case "href":
						item.href = attr.Value
					case "media-type":
						item.mediaType = attr.Value
					}
				}
				if item.id != "" {
					manifest[item.id] = item
				}

			case "itemref":
				for _, attr := range t.Attr {
					if attr.Name.Local == "idref" {
						spine = append(spine, attr.Value)
					}
				}
			}

		case xml.CharData:
			if inMetadata {
				text := strings.TrimSpace(string(t))
				switch currentTag {
				case "title":
					meta.title = text
				case "creator":
					if text != "" {
						meta.authors = append(meta.authors, text)
					}
				case "language":
					meta.language = text
				case "publisher":
					meta.publisher = text
				case "date":
					meta.date = text
				case "description":
					meta.description = text
				case "identifier":
					meta.identifier = text
				}
			}

		case xml.EndElement:
			if t.Name.Local == "metadata" {
				inMetadata = false
			}
			currentTag = ""
		}
	}

	return meta, manifest, spine, nil
}
