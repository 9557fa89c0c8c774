// Package frontmatter parses and serializes the persisted unit of a
// product record: a fenced YAML header followed by free-form body text.
// Marshal then Parse round-trips both halves exactly, with numeric header
// fields coerced to float64.
package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rentgear/catalog/pkg/rentcatalog"
)

var delimiter = []byte("---")

// Parse splits data into its frontmatter header and body. A document
// without an opening fence is treated as all body with empty fields; an
// opening fence without a closing one, or unparsable YAML between the
// fences, is a parse error (the caller surfaces it as a corrupt record).
func Parse(data []byte) (rentcatalog.Frontmatter, string, error) {
	var fm rentcatalog.Frontmatter

	if !hasOpeningFence(data) {
		return fm, string(data), nil
	}

	rest := data[len(delimiter):]
	if len(rest) > 0 && rest[0] == '\r' {
		rest = rest[1:]
	}
	rest = rest[1:] // the newline ending the fence line

	header, body, found := cutClosingFence(rest)
	if !found {
		return fm, "", fmt.Errorf("frontmatter: missing closing fence")
	}

	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, "", fmt.Errorf("frontmatter: %w", err)
	}

	return fm, string(body), nil
}

// Marshal serializes the header and body back into one document. The
// output always carries both fences and ends with a trailing newline.
func Marshal(fm rentcatalog.Frontmatter, body string) ([]byte, error) {
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(delimiter)
	buf.WriteByte('\n')
	buf.Write(header)
	buf.Write(delimiter)
	buf.WriteByte('\n')
	buf.WriteString(body)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func hasOpeningFence(data []byte) bool {
	if !bytes.HasPrefix(data, delimiter) {
		return false
	}
	rest := data[len(delimiter):]
	if len(rest) == 0 {
		return false
	}
	return rest[0] == '\n' || (rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n')
}

// cutClosingFence finds the first line consisting of the fence alone and
// returns the bytes before it (header) and after it (body).
func cutClosingFence(data []byte) (header, body []byte, found bool) {
	offset := 0
	for offset <= len(data) {
		lineEnd := bytes.IndexByte(data[offset:], '\n')
		var line []byte
		next := len(data) + 1
		if lineEnd >= 0 {
			line = data[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		} else {
			line = data[offset:]
		}

		if bytes.Equal(bytes.TrimRight(line, "\r"), delimiter) {
			header = data[:offset]
			if next <= len(data) {
				body = data[next:]
			}
			return header, body, true
		}

		if lineEnd < 0 {
			break
		}
		offset = next
	}
	return nil, nil, false
}
