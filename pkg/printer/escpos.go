package printer

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Align is an ESC a argument
type Align byte

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

// GS ! arguments
const (
	FontNormal byte = 0x00
	FontDouble byte = 0x11
)

// DefaultWidth fits 58mm paper; 80mm paper takes 48
const DefaultWidth = 32

// Document accumulates an ESC/POS job. Text is folded to plain ASCII since
// most thermal printers ship with a code page that lacks Portuguese accents.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a job for a printer that fits width characters per line
func NewDocument(width int) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	d := &Document{width: width}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) command(b ...byte) *Document {
	d.buf.Write(b)
	return d
}

func (d *Document) SetAlign(a Align) *Document {
	return d.command(ESC, 'a', byte(a))
}

func (d *Document) SetBold(on bool) *Document {
	if on {
		return d.command(ESC, 'E', 1)
	}
	return d.command(ESC, 'E', 0)
}

func (d *Document) SetFontSize(size byte) *Document {
	return d.command(GS, '!', size)
}

func (d *Document) LineFeed() *Document {
	return d.command(LF)
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// PartialCut leaves a small hinge so the bill stays on the roll until torn
func (d *Document) PartialCut() *Document {
	return d.command(GS, 'V', 1)
}

// Text writes one line
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(Fold(s))
	d.buf.WriteByte(LF)
	return d
}

// Separator fills a line with char
func (d *Document) Separator(char byte) *Document {
	d.buf.Write(bytes.Repeat([]byte{char}, d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue writes key on the left and value flush right, e.g. "Subtotal:      30.00"
func (d *Document) KeyValue(key, value string) *Document {
	return d.columns(key, value, false)
}

// ItemLine writes "<qty>x <name>" with the line total flush right.
// Fractional quantities keep their decimals, e.g. "0.5x Picanha".
func (d *Document) ItemLine(qty float64, name, total string) *Document {
	return d.columns(strconv.FormatFloat(qty, 'f', -1, 64)+"x "+name, total, true)
}

// columns keeps at least one space between left and right. With cut set, a
// left side that does not fit is shortened so the line never wraps.
func (d *Document) columns(left, right string, cut bool) *Document {
	left, right = Fold(left), Fold(right)
	if room := d.width - len(right) - 1; cut && room > 0 && len(left) > room {
		left = left[:room]
	}
	pad := d.width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
	return d
}

// Bytes returns the job so far
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Fold strips diacritics ("Débito" -> "Debito") and replaces anything that is
// still outside printable ASCII with '?'. The result is one byte per character.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7E {
			return '?'
		}
		return r
	}, folded)
}
