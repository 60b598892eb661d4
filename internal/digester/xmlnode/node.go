package xmlnode

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is a single XML attribute, carrying its resolved namespace URI
// alongside its local name.
type Attr struct {
	Local string
	Space string
	Value string
}

// Node is one element of the decoded DOM. Mixed content is supported only
// to the extent the digester needs it: Text accumulates character data
// found directly under the node, interleaved with Children in document
// order is not preserved (the digester never needs it).
type Node struct {
	Local    string
	Space    string
	Attrs    []Attr
	Children []*Node
	Text     string
	Parent   *Node

	// Namespaces holds any xmlns/xmlns:prefix declarations made directly
	// on this element, keyed by prefix ("" for the default namespace).
	Namespaces map[string]string
}

// EffectiveNamespaces walks n's ancestor chain, merging namespace
// declarations so that the closest declaration of a given prefix wins.
func (n *Node) EffectiveNamespaces() map[string]string {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	merged := map[string]string{}
	for i := len(chain) - 1; i >= 0; i-- {
		for prefix, ns := range chain[i].Namespaces {
			merged[prefix] = ns
		}
	}
	return merged
}

// Attr returns the value of the named attribute (by local name) and
// whether it was present.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// ChildrenNamed returns every direct child whose local name matches.
func (n *Node) ChildrenNamed(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Parse decodes r into a Node tree rooted at the document element.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmlnode: decoding document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Local: t.Name.Local, Space: t.Name.Space}
			for _, a := range t.Attr {
				// xmlns declarations are folded into xml.Name.Space for
				// element/attribute names by the decoder, but a selector
				// string still needs the raw prefix->URI table active at
				// this point in the document, so it is captured too.
				if a.Name.Space == "xmlns" {
					if node.Namespaces == nil {
						node.Namespaces = map[string]string{}
					}
					node.Namespaces[a.Name.Local] = a.Value
					continue
				}
				if a.Name.Local == "xmlns" {
					if node.Namespaces == nil {
						node.Namespaces = map[string]string{}
					}
					node.Namespaces[""] = a.Value
					continue
				}
				node.Attrs = append(node.Attrs, Attr{Local: a.Name.Local, Space: a.Name.Space, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				node.Parent = parent
				parent.Children = append(parent.Children, node)
			} else {
				root = node
			}
			stack = append(stack, node)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("xmlnode: document has no root element")
	}
	return root, nil
}

// InnerXML re-serializes n's children (and, if there are none, its text)
// back into an XML fragment, in the form the digester substitutes for an
// "@NAME@" import parameter token.
func InnerXML(n *Node) string {
	if len(n.Children) == 0 {
		return strings.TrimSpace(n.Text)
	}
	var b strings.Builder
	for _, c := range n.Children {
		writeElement(&b, c)
	}
	return b.String()
}

func writeElement(b *strings.Builder, n *Node) {
	b.WriteByte('<')
	b.WriteString(n.Local)
	for _, a := range n.Attrs {
		fmt.Fprintf(b, ` %s=%q`, a.Local, a.Value)
	}
	if len(n.Children) == 0 && strings.TrimSpace(n.Text) == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if len(n.Children) > 0 {
		for _, c := range n.Children {
			writeElement(b, c)
		}
	} else {
		_ = xml.EscapeText(b, []byte(n.Text))
	}
	b.WriteString("</")
	b.WriteString(n.Local)
	b.WriteByte('>')
}
