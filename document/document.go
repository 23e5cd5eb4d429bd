// Package document reads, edits and writes SVG documents as a generic
// element tree, preserving attributes it does not understand.
package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Node is one element of the tree.
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Node
	Text     string
}

// GetAttr returns the value of the named attribute, or "" when absent.
func (n *Node) GetAttr(name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr updates the named attribute in place or appends it. Repeated
// SetAttr calls are order-insensitive: the resulting attribute value
// depends only on the last call per name.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attr {
		if a.Name.Local == name {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// FindAll collects, in document order, every descendant element with
// the given local name.
func (n *Node) FindAll(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name.Local == local {
			out = append(out, c)
		}
		out = append(out, c.FindAll(local)...)
	}
	return out
}

// Copy deep-copies the node.
func (n *Node) Copy() *Node {
	c := &Node{
		Name: n.Name,
		Attr: append([]xml.Attr{}, n.Attr...),
		Text: n.Text,
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Copy())
	}
	return c
}

// Document is a parsed SVG file. Root is the svg element.
type Document struct {
	Root *Node
}

// Parse reads an SVG document from r.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no svg element found")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse svg: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root, err := decodeElement(dec, start)
		if err != nil {
			return nil, fmt.Errorf("failed to parse svg: %w", err)
		}
		if root.Name.Local != "svg" {
			return nil, fmt.Errorf("root element is <%s>, not <svg>", root.Name.Local)
		}
		return &Document{Root: root}, nil
	}
}

// ParseFile reads an SVG document from disk.
func ParseFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := &Node{
		Name: start.Name,
		Attr: append([]xml.Attr{}, start.Attr...),
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			n.Text += string(t)
		case xml.EndElement:
			return n, nil
		}
	}
}

// WriteTo serializes the document.
func (d *Document) WriteTo(w io.Writer) error {
	var sb strings.Builder
	writeNode(&sb, d.Root)
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteFile serializes the document to disk.
func (d *Document) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := d.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeNode(sb *strings.Builder, n *Node) {
	sb.WriteString("<")
	sb.WriteString(attrName(n.Name))
	for _, a := range n.Attr {
		sb.WriteString(" ")
		sb.WriteString(attrName(a.Name))
		sb.WriteString(`="`)
		xml.EscapeText(sb, []byte(a.Value))
		sb.WriteString(`"`)
	}
	text := strings.TrimSpace(n.Text)
	if len(n.Children) == 0 && text == "" {
		sb.WriteString("/>")
		return
	}
	sb.WriteString(">")
	if text != "" {
		xml.EscapeText(sb, []byte(text))
	}
	for _, c := range n.Children {
		writeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(attrName(n.Name))
	sb.WriteString(">")
}

// attrName renders a decoded name back to its source form. The decoder
// resolves default namespaces into Name.Space, which must not be
// re-emitted as a prefix; explicit xmlns declarations survive in the
// attribute list, so dropping the resolved space round-trips the
// common single-namespace SVG case.
func attrName(name xml.Name) string {
	if name.Space == "xmlns" {
		return "xmlns:" + name.Local
	}
	return name.Local
}
