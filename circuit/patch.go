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

package circuit

import (
	"context"

	"github.com/pkg/errors"

	"github.com/db47h/intcode/vm"
)

// Patch returns a copy of program with noun stored at address 1 and verb at
// address 2.
func Patch(program []vm.Cell, noun, verb vm.Cell) ([]vm.Cell, error) {
	if len(program) < 3 {
		return nil, errors.Errorf("program too short to patch: %d cells", len(program))
	}
	p := append([]vm.Cell(nil), program...)
	p[1], p[2] = noun, verb
	return p, nil
}

// RunPatched patches program with noun and verb, runs it without any I/O and
// returns the value left at address 0.
func RunPatched(ctx context.Context, program []vm.Cell, noun, verb vm.Cell, opts ...vm.Option) (vm.Cell, error) {
	p, err := Patch(program, noun, verb)
	if err != nil {
		return 0, err
	}
	i, err := vm.New(p, opts...)
	if err != nil {
		return 0, err
	}
	if err = i.RunContext(ctx); err != nil {
		return 0, errors.Wrapf(err, "noun=%d verb=%d", noun, verb)
	}
	return i.Mem[0], nil
}

// ErrNotFound is returned by FindNounVerb if no pair produces the target.
var ErrNotFound = errors.New("no matching noun/verb pair")

// FindNounVerb searches for the first noun and verb pair, in ascending order
// of noun then verb, both in the range [0, limit], such that running the
// patched program leaves target at address 0. Pairs for which the program
// fails are skipped.
func FindNounVerb(ctx context.Context, program []vm.Cell, target, limit vm.Cell, opts ...vm.Option) (noun, verb vm.Cell, err error) {
	for noun = 0; noun <= limit; noun++ {
		for verb = 0; verb <= limit; verb++ {
			if err = ctx.Err(); err != nil {
				return 0, 0, err
			}
			v, err := RunPatched(ctx, program, noun, verb, opts...)
			if err != nil {
				if ctx.Err() != nil {
					return 0, 0, ctx.Err()
				}
				logger().Debugf("noun=%d verb=%d: %v", noun, verb, err)
				continue
			}
			if v == target {
				logger().Infof("found noun=%d verb=%d", noun, verb)
				return noun, verb, nil
			}
		}
	}
	return 0, 0, ErrNotFound
}
