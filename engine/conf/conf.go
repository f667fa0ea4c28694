// Package conf reads and writes flat key-value documents:
//
//	# comment
//	pfd/pos/left = 100
//	pfd/visible = true
//
// Keys are free-form strings accepted by ValidKey. Values run to the end of
// the line.
package conf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SyntaxError reports an unparsable line. Line is 1-based.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("conf: syntax error at line %d: %q", e.Line, e.Text)
}

// Doc is an in-memory key-value document.
type Doc struct {
	vals map[string]string
}

// ValidKey reports whether key survives a write and parse unchanged.
func ValidKey(key string) error {
	switch {
	case key == "":
		return errors.New("conf: empty key")
	case strings.TrimSpace(key) != key:
		return fmt.Errorf("conf: key %q has surrounding space", key)
	case key[0] == '#':
		return fmt.Errorf("conf: key %q starts a comment", key)
	case strings.ContainsAny(key, "=\n\r"):
		return fmt.Errorf("conf: key %q contains '=' or a line break", key)
	}
	return nil
}

func New() *Doc { return &Doc{vals: make(map[string]string)} }

// Parse reads a document. On a malformed line it returns a *SyntaxError.
func Parse(r io.Reader) (*Doc, error) {
	d := New()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Text()
		s := strings.TrimSpace(raw)
		if s == "" || s[0] == '#' {
			continue
		}
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, &SyntaxError{Line: line, Text: raw}
		}
		d.vals[k] = strings.TrimSpace(v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("conf: read: %w", err)
	}
	return d, nil
}

// ReadFile parses the document stored at path.
func ReadFile(path string) (*Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// ErrorLine returns the 1-based line of a syntax error, or 0 when err is not
// one.
func ErrorLine(err error) int {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Line
	}
	return 0
}

// WriteTo writes the document with keys in sorted order.
func (d *Doc) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, k := range d.Keys() {
		m, err := fmt.Fprintf(bw, "%s = %s\n", k, d.vals[k])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteFile replaces the file at path with the document.
func (d *Doc) WriteFile(path string) error {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

func (d *Doc) Len() int { return len(d.vals) }

func (d *Doc) Keys() []string {
	keys := make([]string, 0, len(d.vals))
	for k := range d.vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d *Doc) Get(key string) (string, bool) {
	v, ok := d.vals[key]
	return v, ok
}

func (d *Doc) Set(key, val string) { d.vals[key] = val }

func (d *Doc) Int(key string) (int, bool) {
	v, ok := d.vals[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (d *Doc) SetInt(key string, v int) { d.vals[key] = strconv.Itoa(v) }

func (d *Doc) Bool(key string) (bool, bool) {
	v, ok := d.vals[key]
	if !ok {
		return false, false
	}
	switch strings.ToLower(v) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

func (d *Doc) SetBool(key string, v bool) { d.vals[key] = strconv.FormatBool(v) }
