package sink

import (
	"bufio"
	"io"
	"strconv"

	"github.com/lezhnev74/postings_codec/codec"
)

// Printer writes postings as "<id,weight>" without separators.
// Output is buffered, call Flush when done.
type Printer struct {
	w      *bufio.Writer
	weight uint64
	buf    []byte
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: bufio.NewWriter(w)}
}

func (p *Printer) SetWeight(weight uint64) { p.weight = weight }

func (p *Printer) EmitBatch(b *codec.Batch) {
	for _, id := range b.Values() {
		p.Emit(id, p.weight)
	}
}

func (p *Printer) Emit(id, weight uint64) {
	p.buf = append(p.buf[:0], '<')
	p.buf = strconv.AppendUint(p.buf, id, 10)
	p.buf = append(p.buf, ',')
	p.buf = strconv.AppendUint(p.buf, weight, 10)
	p.buf = append(p.buf, '>')
	p.w.Write(p.buf) // a failed write is reported by Flush
}

// BeginTerm prints the term followed by a space, postings follow on the same line.
func (p *Printer) BeginTerm(term []byte) {
	p.w.Write(term)
	p.w.WriteByte(' ')
}

func (p *Printer) EndTerm() {
	p.w.WriteByte('\n')
}

// WriteString passes text (term names, separators) through to the output.
func (p *Printer) WriteString(s string) {
	p.w.WriteString(s)
}

func (p *Printer) Flush() error {
	return p.w.Flush()
}
