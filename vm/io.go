// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Reader is the interface that wraps the ReadCell method. ReadCell is called
// by the INPUT instruction and may block until a value is available.
type Reader interface {
	ReadCell() (Cell, error)
}

// Writer is the interface that wraps the WriteCell method. WriteCell is called
// by the OUTPUT instruction.
type Writer interface {
	WriteCell(v Cell) error
}

// ReaderFunc is an adapter to use an ordinary function as a Reader.
type ReaderFunc func() (Cell, error)

// ReadCell calls f().
func (f ReaderFunc) ReadCell() (Cell, error) { return f() }

// WriterFunc is an adapter to use an ordinary function as a Writer.
type WriterFunc func(v Cell) error

// WriteCell calls f(v).
func (f WriterFunc) WriteCell(v Cell) error { return f(v) }

// Values returns a Reader that yields the given values in order, then io.EOF.
func Values(v ...Cell) Reader {
	return &valueReader{v}
}

type valueReader struct {
	v []Cell
}

func (r *valueReader) ReadCell() (Cell, error) {
	if len(r.v) == 0 {
		return 0, io.EOF
	}
	v := r.v[0]
	r.v = r.v[1:]
	return v, nil
}

// Buffer is a Writer that collects output values.
type Buffer []Cell

// WriteCell appends v to the buffer.
func (b *Buffer) WriteCell(v Cell) error {
	*b = append(*b, v)
	return nil
}

// isSep reports whether r separates integers in text input.
func isSep(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

var errEmptyValue = errors.New("empty value")

// cellSplitter is a bufio.SplitFunc state for comma or white space separated
// integers. Two commas with no value in between are an error.
type cellSplitter struct {
	seen   bool // a value has been read
	commas int  // commas since the last value
}

func (s *cellSplitter) split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for ; start < len(data) && isSep(rune(data[start])); start++ {
		if data[start] == ',' {
			s.commas++
			if !s.seen || s.commas > 1 {
				return 0, nil, errEmptyValue
			}
		}
	}
	for i := start; i < len(data); i++ {
		if isSep(rune(data[i])) {
			s.seen, s.commas = true, 0
			return i, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		s.seen, s.commas = true, 0
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

type textReader struct {
	s      *bufio.Scanner
	prompt func()
}

// NewTextReader returns a Reader that parses decimal integers separated by
// commas or white space from r. If prompt is not nil, it is called before
// waiting for each value.
func NewTextReader(r io.Reader, prompt func()) Reader {
	s := bufio.NewScanner(r)
	s.Split(new(cellSplitter).split)
	return &textReader{s, prompt}
}

func (r *textReader) ReadCell() (Cell, error) {
	if r.prompt != nil {
		r.prompt()
	}
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return 0, errors.Wrap(err, "read failed")
		}
		return 0, io.EOF
	}
	t := r.s.Text()
	n, err := strconv.ParseInt(t, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid input value %q", t)
	}
	return Cell(n), nil
}

type textWriter struct {
	w   io.Writer
	sep string
	b   []byte
}

// NewTextWriter returns a Writer that writes values in decimal to w, each
// followed by sep.
func NewTextWriter(w io.Writer, sep string) Writer {
	return &textWriter{w: w, sep: sep}
}

func (w *textWriter) WriteCell(v Cell) error {
	w.b = strconv.AppendInt(w.b[:0], int64(v), 10)
	w.b = append(w.b, w.sep...)
	_, err := w.w.Write(w.b)
	return errors.Wrap(err, "write failed")
}

// ParseCells parses a comma separated list of integers. Surrounding white
// space is ignored.
func ParseCells(s string) ([]Cell, error) {
	return Parse(strings.NewReader(s))
}
