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
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Parse reads a program from r. Programs are stored as decimal integers
// separated by commas. White space around values is ignored.
func Parse(r io.Reader) ([]Cell, error) {
	var prog []Cell
	tr := NewTextReader(r, nil)
	for {
		v, err := tr.ReadCell()
		if err != nil {
			if err == io.EOF {
				return prog, nil
			}
			return nil, errors.Wrapf(err, "cell %d", len(prog))
		}
		prog = append(prog, v)
	}
}

// Load loads a program from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	prog, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: load failed", fileName)
	}
	if len(prog) == 0 {
		return nil, errors.Errorf("%s: empty program", fileName)
	}
	return prog, nil
}

// Encode writes mem to w in the format read by Parse.
func Encode(w io.Writer, mem []Cell) error {
	bw := bufio.NewWriter(w)
	b := make([]byte, 0, 24)
	for k, v := range mem {
		b = b[:0]
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if _, err := bw.Write(b); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	return errors.Wrap(bw.Flush(), "write failed")
}

// FormatCells returns cells formatted as by Encode.
func FormatCells(cells []Cell) string {
	b := make([]byte, 0, len(cells)*4)
	for k, v := range cells {
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}

// Used returns the memory slice up to and including the last non-zero cell,
// or the first n cells if the result would be shorter.
func Used(mem []Cell, n int) []Cell {
	end := len(mem)
	for end > n && mem[end-1] == 0 {
		end--
	}
	return mem[:end]
}
