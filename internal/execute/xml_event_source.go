package execute

import (
	"encoding/xml"
	"io"
)

// xmlEventSource is the reference EventSource adapter: it decodes an
// io.Reader with the standard library's encoding/xml and flattens tokens
// into the three SAXEvent shapes, tracking the ancestor stack needed for
// StartElement/EndElement.Path.
type xmlEventSource struct {
	dec   *xml.Decoder
	stack []string
}

// NewXMLEventSource returns an EventSource backed by encoding/xml. It is
// the minimal bootstrapper substitute spec.md treats as out of scope;
// a production caller could supply a streaming, validating SAX parser
// instead without changing anything downstream.
func NewXMLEventSource(r io.Reader) EventSource {
	return &xmlEventSource{dec: xml.NewDecoder(r)}
}

func (s *xmlEventSource) Next() (SAXEvent, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case xml.StartElement:
		s.stack = append(s.stack, t.Name.Local)
		attrs := make(map[string]string, len(t.Attr))
		for _, a := range t.Attr {
			attrs[a.Name.Local] = a.Value
		}
		return StartElement{Name: t.Name.Local, Attrs: attrs, Path: s.currentPath()}, nil
	case xml.EndElement:
		p := s.currentPath()
		name := t.Name.Local
		if len(s.stack) > 0 {
			s.stack = s.stack[:len(s.stack)-1]
		}
		return EndElement{Name: name, Path: p}, nil
	case xml.CharData:
		return Characters{Text: string(t)}, nil
	default:
		return s.Next()
	}
}

func (s *xmlEventSource) currentPath() []string {
	p := make([]string, len(s.stack))
	copy(p, s.stack)
	return p
}
