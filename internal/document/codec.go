package document

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Header is the XML declaration written at the top of every saved document.
const Header = `<?xml version="1.0" encoding="utf-8"?>`

// ErrNoRoot is returned when the input contains no root element.
var ErrNoRoot = errors.New("document has no root element")

// ParseTree reads an XML document into a node tree and returns its root
// element. The input must already be UTF-8 (see NormalizeCharset).
// Namespace prefixes are kept verbatim so that the tree writes back unchanged.
func ParseTree(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := decoder.InputPos()
			return nil, fmt.Errorf("parse xml at line %d, column %d: %w", line, col, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Kind: ElementNode, Tag: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: qualifiedName(a.Name), Value: a.Value})
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements (%s)", node.Tag)
				}
				root = node
			} else {
				stack[len(stack)-1].Append(node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Tag != name {
				line, col := decoder.InputPos()
				return nil, fmt.Errorf("parse xml at line %d, column %d: unexpected end element </%s>", line, col, name)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			if text := strings.TrimSpace(string(t)); text != "" {
				stack[len(stack)-1].Text += text
			}

		case xml.Comment:
			comment := &Node{Kind: CommentNode, Text: string(t)}
			if len(stack) > 0 {
				stack[len(stack)-1].Append(comment)
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("parse xml: unclosed element <%s>", stack[len(stack)-1].Tag)
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// WriteTree serialises root with the standard header, tab indentation and
// one element per line. The output depends only on the tree.
func WriteTree(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	if err := writeNode(bw, root, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node, depth int) error {
	indent := strings.Repeat("\t", depth)

	if n.Kind == CommentNode {
		_, err := fmt.Fprintf(w, "%s<!--%s-->\n", indent, n.Text)
		return err
	}

	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(n.Tag)
	for _, a := range n.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}

	switch {
	case len(n.Children) == 0 && n.Text == "":
		_, err := w.WriteString("/>\n")
		return err

	case len(n.Children) == 0:
		w.WriteByte('>')
		if err := xml.EscapeText(w, []byte(n.Text)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "</%s>\n", n.Tag)
		return err
	}

	w.WriteString(">\n")
	if n.Text != "" {
		w.WriteString(indent + "\t")
		if err := xml.EscapeText(w, []byte(n.Text)); err != nil {
			return err
		}
		w.WriteByte('\n')
	}
	for _, c := range n.Children {
		if err := writeNode(w, c, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.Tag)
	return err
}
