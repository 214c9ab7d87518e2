// Package xmlgen re-emits XML documents through the command tree, so they are
// indented with the writer's settings and only rewritten when they change.
//
// Elements with children become Braces delimited by their start and end
// tags. Elements holding only text stay on one line and empty elements are
// self-closing. Comments, processing instructions, directives and CDATA
// sections are kept; whitespace between elements is not.
package xmlgen

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/cockroachdb/errors"

	"github.com/rubiojr/panini/command"
	"github.com/rubiojr/panini/style"
	"github.com/rubiojr/panini/writer"
)

// Load reads an XML document from path.
func Load(path string) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return doc, nil
}

// Parse reads an XML document from r.
func Parse(r io.Reader) (*etree.Document, error) {
	doc := newDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "parsing xml")
	}
	return doc, nil
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	return doc
}

// Build turns the document into a command tree. Every top-level token ends
// with a new line.
func Build(doc *etree.Document) command.Command {
	var tree command.Block
	for _, tok := range doc.Child {
		if c := token(tok); c != nil {
			tree = append(tree, c, command.NextLine{})
		}
	}
	return tree
}

// Render builds doc and renders it into w.
func Render(w *writer.Writer, doc *etree.Document) error {
	return w.Render(Build(doc))
}

func token(tok etree.Token) command.Command {
	switch t := tok.(type) {
	case *etree.Element:
		return element(t)
	case *etree.CharData:
		return charData(t)
	case *etree.Comment:
		return command.Chunk("<!--" + t.Data + "-->")
	case *etree.ProcInst:
		if t.Inst == "" {
			return command.Chunk("<?" + t.Target + "?>")
		}
		return command.Chunk("<?" + t.Target + " " + t.Inst + "?>")
	case *etree.Directive:
		return command.Chunk("<!" + t.Data + ">")
	}
	return nil
}

func charData(t *etree.CharData) command.Command {
	if t.IsCData() {
		return command.Chunk("<![CDATA[" + t.Data + "]]>")
	}
	text := strings.TrimSpace(t.Data)
	if text == "" {
		return nil
	}
	return command.Chunk(escapeText(text))
}

func element(e *etree.Element) command.Command {
	name := qualified(e.Space, e.Tag)

	var start strings.Builder
	start.WriteString("<" + name)
	for _, a := range e.Attr {
		start.WriteString(" " + qualified(a.Space, a.Key) + `="` + escapeAttr(a.Value) + `"`)
	}

	if text, ok := textOnly(e); ok {
		if text == "" {
			return command.Chunk(start.String() + "/>")
		}
		return command.Chunk(start.String() + ">" + escapeText(text) + "</" + name + ">")
	}

	var body command.Block
	for _, tok := range e.Child {
		if c := token(tok); c != nil {
			body = append(body, c, command.NextLine{})
		}
	}
	return command.Braces{
		Style: style.SameLine,
		Open:  start.String() + ">",
		Close: "</" + name + ">",
		Body:  body,
	}
}

// textOnly returns the trimmed text of an element without element, comment
// or other markup children.
func textOnly(e *etree.Element) (string, bool) {
	var text strings.Builder
	for _, tok := range e.Child {
		cd, ok := tok.(*etree.CharData)
		if !ok || cd.IsCData() {
			return "", false
		}
		text.WriteString(cd.Data)
	}
	return strings.TrimSpace(text.String()), true
}

func qualified(space, local string) string {
	if space == "" {
		return local
	}
	return space + ":" + local
}

var (
	// line breaks in text become character references so the writer cannot
	// indent the continuation lines into the character data
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#13;", "\n", "&#10;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "\n", "&#xA;", "\t", "&#x9;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
