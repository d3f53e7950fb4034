// Package encoding turns uploaded text of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	CharsetUTF8    = "UTF-8"
	CharsetUTF16LE = "UTF-16LE"
	CharsetUTF16BE = "UTF-16BE"
	// CharsetFallback is assumed when nothing else fits.
	CharsetFallback = "windows-1252"
)

const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// legacy maps the single-byte charsets chardet reports to their decoders.
var legacy = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// NewUTF8Reader returns a reader yielding r as UTF-8, and the name of the
// charset it was decoded from. A byte order mark wins over content sniffing;
// a UTF-8 BOM is dropped. Unrecognised single-byte text is read as
// windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, CharsetUTF8, nil
	case bytes.HasPrefix(head, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), CharsetUTF16LE, nil
	case bytes.HasPrefix(head, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), CharsetUTF16BE, nil
	case validUTF8(head, len(head) == sniffSize):
		return br, CharsetUTF8, nil
	}

	name := sniff(head)
	if name == CharsetUTF8 {
		return br, CharsetUTF8, nil
	}

	return decode(br, legacy[name]), name, nil
}

// validUTF8 reports whether head is UTF-8. A truncated head may end in the
// middle of a rune, which does not count against it.
func validUTF8(head []byte, truncated bool) bool {
	if !truncated {
		return utf8.Valid(head)
	}

	for cut := 0; cut < utf8.UTFMax && cut < len(head); cut++ {
		if utf8.Valid(head[:len(head)-cut]) {
			return true
		}
	}

	return false
}

// sniff guesses the charset of head, falling back to CharsetFallback.
func sniff(head []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return CharsetFallback
	}

	if result.Charset == CharsetUTF8 {
		return CharsetUTF8
	}

	if _, ok := legacy[result.Charset]; ok {
		return result.Charset
	}

	return CharsetFallback
}

func decode(r io.Reader, e xenc.Encoding) io.Reader {
	return transform.NewReader(r, e.NewDecoder())
}
