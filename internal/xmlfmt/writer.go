// Package xmlfmt keeps the registry source document diff-friendly.
//
// A generic XML serializer scatters leaf-node text across multiple
// indentation-heavy lines, so every regeneration of the document produces
// large spurious diffs. Writer consumes the linear text chunks such a
// serializer emits and re-lines them into one stable canonical layout;
// Rewrite drives a full tokenize-and-reserialize pass through it.
//
// The invariant that justifies the package: feeding the untouched
// canonical file's serialization back through the Writer reproduces the
// file byte for byte.
package xmlfmt

import (
	"fmt"
	"io"
	"strings"
)

// Writer is a streaming line-reformatter. It buffers serializer chunks
// and consumes them unit by unit:
//
//   - an attribute-less open tag like <ann> is held until its content
//     arrives
//   - held tag + matching close tag with no content: the close tag is
//     dropped, only the open tag line remains
//   - held tag followed by a nested tag start: the open tag is emitted
//     alone
//   - held tag + text + matching close tag: one output line if the
//     trimmed text is single-line, else three (open, trimmed text block,
//     close)
//   - any other complete line passes through trimmed; blank lines are
//     dropped
//
// Every emitted line except raw symbol lines (starting "<e ") gets two
// fixups: "&quot;" becomes a literal quote, and runes outside the safe
// ranges (printable ASCII, Latin-1 supplement, kana, CJK, half- and
// full-width forms) become numeric character references.
type Writer struct {
	out     io.Writer
	pending string
	err     error
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write appends a serializer chunk and flushes every unit the chunk
// completes. The first destination error sticks and is returned from
// then on.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	w.pending += string(p)
	w.process()

	if w.err != nil {
		return 0, w.err
	}

	return len(p), nil
}

// Close flushes whatever is still pending, trimmed. It does not close
// the destination; ownership of that stays with the caller.
func (w *Writer) Close() error {
	w.writeLine(strings.TrimSpace(w.pending))
	w.pending = ""

	return w.err
}

// process consumes complete units from the front of the pending buffer
// and stops at the first incomplete one.
func (w *Writer) process() {
	for w.err == nil {
		name, ok := simpleOpenTag(w.pending)
		if ok {
			if !w.consumeLeaf(name) {
				return
			}
			continue
		}

		// Plain line mode.
		i := strings.IndexByte(w.pending, '\n')
		if i < 0 {
			return
		}
		w.writeLine(strings.TrimSpace(w.pending[:i]))
		w.pending = w.pending[i+1:]
	}
}

// consumeLeaf handles a pending buffer that starts with the held open
// tag <name>. It reports whether a unit was consumed; false means more
// input is needed.
func (w *Writer) consumeLeaf(name string) bool {
	head := "<" + name + ">"
	tail := "</" + name + ">"
	rest := w.pending[len(head):]

	// Whitespace between the open tag and its content is serializer
	// padding, not content.
	content := strings.TrimLeft(rest, " \t\r\n")

	if strings.HasPrefix(content, tail) {
		// Empty element: drop the close tag, keep the open tag line.
		w.writeLine(head)
		w.pending = content[len(tail):]
		return true
	}
	if strings.HasPrefix(content, "<") {
		// A nested element follows: the open tag gets its own line.
		w.writeLine(head)
		w.pending = content
		return true
	}
	if content == "" || !strings.Contains(rest, tail) {
		// Content (or its close tag) has not arrived yet. Padding
		// already inspected can be forgotten.
		if content == "" {
			w.pending = head
		}
		return false
	}

	i := strings.Index(rest, tail)
	text := strings.TrimSpace(rest[:i])
	if strings.Contains(text, "\n") {
		// Multi-line content keeps its inner structure but moves the
		// tags onto their own lines.
		w.writeLine(head)
		w.writeLine(text)
		w.writeLine(tail)
	} else {
		w.writeLine(head + text + tail)
	}
	w.pending = rest[i+len(tail):]

	return true
}

// simpleOpenTag reports whether s starts with a complete attribute-less
// open tag like <ann> and returns its name.
func simpleOpenTag(s string) (string, bool) {
	if len(s) < 3 || s[0] != '<' {
		return "", false
	}

	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '>' && i > 1:
			return s[1:i], true
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9', c == '_':
			continue
		default:
			return "", false
		}
	}

	return "", false
}

func (w *Writer) writeLine(line string) {
	if w.err != nil || line == "" {
		return
	}

	// Raw symbol lines keep their entity escaping; everything else is
	// made readable.
	if !strings.HasPrefix(line, "<e ") {
		line = strings.ReplaceAll(line, "&quot;", `"`)
		line = escapeUnsafe(line)
	}

	if _, err := io.WriteString(w.out, line+"\n"); err != nil {
		w.err = err
	}
}

// escapeUnsafe replaces every rune outside the safe ranges with its
// numeric character reference.
func escapeUnsafe(line string) string {
	if !strings.ContainsFunc(line, isUnsafe) {
		return line
	}

	var b strings.Builder
	for _, r := range line {
		if isUnsafe(r) {
			fmt.Fprintf(&b, "&#x%04X;", r)
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Safe are ASCII, the Latin-1 supplement, Hiragana/Katakana, the CJK
// unified block, and the half- and fullwidth forms.
func isUnsafe(r rune) bool {
	switch {
	case r <= 0x7E,
		0xA1 <= r && r <= 0xFF,
		0x3040 <= r && r <= 0x30FF,
		0x4E00 <= r && r <= 0x9FFF,
		0xFF01 <= r && r <= 0xFFEE:
		return false
	}

	return true
}
