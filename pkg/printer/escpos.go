package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment is an ESC a argument
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Character sizes for GS !
const (
	SizeNormal byte = 0x00
	SizeDouble byte = 0x11
)

// Document builds an ESC/POS byte stream for a fixed character width:
// 32 columns on 58mm paper, 48 on 80mm.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document with the printer initialise command
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	d := &Document{width: width}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width is the number of characters per line
func (d *Document) Width() int {
	return d.width
}

func (d *Document) Align(a Alignment) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(a)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) Size(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line writes s and a line feed. Text wider than the paper is wrapped.
func (d *Document) Line(s string) *Document {
	for _, part := range wrap(s, d.width) {
		d.buf.WriteString(part)
		d.buf.WriteByte(LF)
	}
	return d
}

// Rule prints a full-width line of ch
func (d *Document) Rule(ch rune) *Document {
	d.buf.WriteString(strings.Repeat(string(ch), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Columns prints left and right on one line with the gap padded. When both
// do not fit, left goes on its own line and right is pushed to the margin
// on the next.
func (d *Document) Columns(left, right string) *Document {
	gap := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		d.Line(left)
		left = ""
		gap = d.width - utf8.RuneCountInString(right)
		if gap < 0 {
			gap = 0
		}
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", gap))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
	return d
}

// Feed advances the paper n lines
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Cut cuts the paper, leaving a tab when partial is set
func (d *Document) Cut(partial bool) *Document {
	var mode byte
	if partial {
		mode = 1
	}
	d.buf.Write([]byte{GS, 'V', mode})
	return d
}

// Bytes returns the accumulated stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func wrap(s string, width int) []string {
	runes := []rune(s)
	if len(runes) <= width {
		return []string{s}
	}
	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
