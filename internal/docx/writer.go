// Package docx writes and reads WordprocessingML (.docx) documents made of
// plain-text paragraphs.
package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/wml/ctypes"
)

// ContentType is the media type of a .docx document.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extension is the file extension used for generated documents.
const Extension = ".docx"

const (
	nsMain         = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart   = "word/document.xml"
	corePropsPart  = "docProps/core.xml"
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	defaultCreator = "laudoapi"
)

type coreProperties struct {
	XMLName    xml.Name `xml:"cp:coreProperties"`
	XmlnsCP    string   `xml:"xmlns:cp,attr"`
	XmlnsDC    string   `xml:"xmlns:dc,attr"`
	XmlnsDCT   string   `xml:"xmlns:dcterms,attr"`
	XmlnsXSI   string   `xml:"xmlns:xsi,attr"`
	Title      string   `xml:"dc:title,omitempty"`
	Creator    string   `xml:"dc:creator"`
	Identifier string   `xml:"dc:identifier,omitempty"`
	Created    dcDate   `xml:"dcterms:created"`
	Modified   dcDate   `xml:"dcterms:modified"`
}

type dcDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// Options carries optional document properties.
type Options struct {
	Title      string
	Identifier string
	Created    time.Time
}

// Paragraphs splits text the way it is laid out in the document: surrounding
// whitespace trimmed, one paragraph per line.
func Paragraphs(text string) []string {
	return strings.Split(strings.TrimSpace(text), "\n")
}

// Write serializes text as a .docx package to w, one paragraph per line.
func Write(w io.Writer, text string) error {
	return WriteWithOptions(w, text, Options{})
}

// WriteWithOptions is Write with document properties.
func WriteWithOptions(w io.Writer, text string, opt Options) error {
	if opt.Created.IsZero() {
		opt.Created = time.Now()
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	for _, line := range Paragraphs(text) {
		p := doc.AddEmptyParagraph()
		if run := newRun(line); run != nil {
			ct := p.GetCT()
			ct.Children = append(ct.Children, ctypes.ParagraphChild{Run: run})
		}
	}

	core, err := marshalCoreProperties(opt)
	if err != nil {
		return err
	}
	// The template's core part is replaced as a whole.
	doc.FileMap.Store(corePropsPart, core)

	if err := doc.Write(w); err != nil {
		return fmt.Errorf("write docx package: %w", err)
	}
	return nil
}

// WriteFile renders text into a new .docx file at path. The parent directory
// must already exist.
func WriteFile(path, text string) error {
	var buf bytes.Buffer
	if err := Write(&buf, text); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // documents are meant to be shared
		return fmt.Errorf("write docx file: %w", err)
	}
	return nil
}

// newRun lays out one line as a run. Tabs become <w:tab/> elements between
// text segments. An empty line yields no run.
func newRun(line string) *ctypes.Run {
	if line == "" {
		return nil
	}
	run := &ctypes.Run{}
	for i, seg := range strings.Split(line, "\t") {
		if i > 0 {
			run.Children = append(run.Children, ctypes.RunChild{Tab: &ctypes.Empty{}})
		}
		if seg != "" {
			run.Children = append(run.Children, ctypes.RunChild{Text: ctypes.TextFromString(seg)})
		}
	}
	return run
}

func marshalCoreProperties(opt Options) ([]byte, error) {
	created := dcDate{Type: "dcterms:W3CDTF", Value: opt.Created.UTC().Format(time.RFC3339)}
	body, err := xml.Marshal(coreProperties{
		XmlnsCP:    "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		XmlnsDC:    "http://purl.org/dc/elements/1.1/",
		XmlnsDCT:   "http://purl.org/dc/terms/",
		XmlnsXSI:   "http://www.w3.org/2001/XMLSchema-instance",
		Title:      opt.Title,
		Creator:    defaultCreator,
		Identifier: opt.Identifier,
		Created:    created,
		Modified:   created,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", corePropsPart, err)
	}
	return append([]byte(xmlDeclaration), body...), nil
}
