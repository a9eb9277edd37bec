package logtail

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Decode splits carry+chunk into complete lines and returns the unterminated
// remainder as the new carry. Lines have a single trailing '\r' removed and
// blank lines are dropped. Invalid UTF-8 is replaced rather than rejected.
//
// The carry is kept as raw bytes so a multibyte rune split across two chunks
// decodes the same as it would in one chunk.
func Decode(carry, chunk []byte) (lines []string, rest []byte) {
	buf := make([]byte, 0, len(carry)+len(chunk))
	buf = append(buf, carry...)
	buf = append(buf, chunk...)

	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		seg := buf[:i]
		buf = buf[i+1:]
		seg = bytes.TrimSuffix(seg, []byte{'\r'})
		text := decodeText(seg)
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, text)
	}
	if len(buf) > 0 {
		rest = append([]byte(nil), buf...)
	}
	return lines, rest
}

// Decoder holds the carry between successive calls to Decode.
type Decoder struct {
	carry []byte
}

// Feed decodes chunk against the current carry.
func (d *Decoder) Feed(chunk []byte) []string {
	lines, rest := Decode(d.carry, chunk)
	d.carry = rest
	return lines
}

// Reset drops any partial line.
func (d *Decoder) Reset() {
	d.carry = nil
}

// Pending returns the number of carried bytes not yet terminated by '\n'.
func (d *Decoder) Pending() int {
	return len(d.carry)
}

func decodeText(b []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
