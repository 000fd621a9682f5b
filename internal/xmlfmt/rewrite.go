package xmlfmt

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Rewrite re-serializes the XML document on src into the canonical layout
// on dst: it tokenizes the document, re-emits it the way a generic DOM
// dump would, and pipes that through a Writer. Rewriting canonical output
// is byte-stable, which is what keeps regeneration diffs minimal.
func Rewrite(dst io.Writer, src io.Reader) error {
	w := NewWriter(dst)

	if err := emit(w, xml.NewDecoder(src)); err != nil {
		return err
	}

	return w.Close()
}

// RewriteString is Rewrite from and into a string, for tests and diffing.
func RewriteString(src string) (string, error) {
	var b strings.Builder
	if err := Rewrite(&b, strings.NewReader(src)); err != nil {
		return "", err
	}

	return b.String(), nil
}

func emit(w *Writer, dec *xml.Decoder) error {
	tokens := &tokenReader{dec: dec}

	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	for {
		tok, err := tokens.next()
		if errors.Is(err, io.EOF) {
			// The strict decoder has already verified the document is
			// balanced by the time it reports EOF.
			break
		}
		if err != nil {
			return fmt.Errorf("failed to tokenize document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := emitStart(w, tokens, t); err != nil {
				return err
			}
		case xml.EndElement:
			if _, err := io.WriteString(w, "</"+t.Name.Local+">\n"); err != nil {
				return err
			}
		case xml.CharData:
			if _, err := io.WriteString(w, escapeData(string(t))+"\n"); err != nil {
				return err
			}
		case xml.Comment:
			if _, err := io.WriteString(w, "<!--"+string(t)+"-->\n"); err != nil {
				return err
			}
		case xml.ProcInst, xml.Directive:
			// The declaration line is emitted once, above; nothing else
			// belongs in the canonical form.
		}
	}

	return nil
}

// emitStart writes a start tag, folding the two shapes a DOM dump
// special-cases: an empty element self-closes, and an element whose only
// child is one text node stays on a single serializer line.
func emitStart(w *Writer, tokens *tokenReader, start xml.StartElement) error {
	var b strings.Builder
	b.WriteString("<" + start.Name.Local)
	for _, a := range start.Attr {
		b.WriteString(" " + a.Name.Local + `="` + escapeData(a.Value) + `"`)
	}

	next, err := tokens.peek(0)
	if err == nil {
		if end, ok := next.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
			if _, err := tokens.next(); err != nil {
				return err
			}
			_, err = io.WriteString(w, b.String()+"/>\n")
			return err
		}

		if cd, ok := next.(xml.CharData); ok {
			after, err2 := tokens.peek(1)
			if err2 == nil {
				if end, ok := after.(xml.EndElement); ok && end.Name.Local == start.Name.Local {
					if _, err := tokens.next(); err != nil {
						return err
					}
					if _, err := tokens.next(); err != nil {
						return err
					}
					_, err = io.WriteString(w,
						b.String()+">"+escapeData(string(cd))+"</"+start.Name.Local+">\n")
					return err
				}
			}
		}
	}

	_, err = io.WriteString(w, b.String()+">\n")
	return err
}

// escapeData escapes text and attribute data the way a DOM dump does.
// The Writer later restores literal quotes outside raw symbol lines.
var dataEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

// tokenReader adds bounded lookahead to an xml.Decoder. Tokens are copied
// on peek because the decoder reuses its buffers.
type tokenReader struct {
	dec    *xml.Decoder
	queued []xml.Token
}

func (tr *tokenReader) next() (xml.Token, error) {
	if len(tr.queued) > 0 {
		tok := tr.queued[0]
		tr.queued = tr.queued[1:]
		return tok, nil
	}

	return tr.dec.Token()
}

func (tr *tokenReader) peek(n int) (xml.Token, error) {
	for len(tr.queued) <= n {
		tok, err := tr.dec.Token()
		if err != nil {
			return nil, err
		}
		tr.queued = append(tr.queued, xml.CopyToken(tok))
	}

	return tr.queued[n], nil
}
