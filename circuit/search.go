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
	"golang.org/x/sync/errgroup"

	"github.com/db47h/intcode/vm"
)

// Permutations returns all permutations of set in lexicographic order of
// positions: for set {a, b, c}, the result is abc, acb, bac, bca, cab, cba.
// Values in set are treated as distinct even if they compare equal.
func Permutations(set []vm.Cell) [][]vm.Cell {
	var res [][]vm.Cell
	perm := make([]vm.Cell, 0, len(set))
	used := make([]bool, len(set))
	var walk func()
	walk = func() {
		if len(perm) == len(set) {
			res = append(res, append([]vm.Cell(nil), perm...))
			return
		}
		for i, v := range set {
			if used[i] {
				continue
			}
			used[i] = true
			perm = append(perm, v)
			walk()
			perm = perm[:len(perm)-1]
			used[i] = false
		}
	}
	walk()
	return res
}

// Result is the outcome of a Search.
type Result struct {
	Signal vm.Cell   // best signal
	Phases []vm.Cell // phase settings producing Signal
}

// PhaseError reports the permutation of phase settings whose circuit failed
// during a Search.
type PhaseError struct {
	Phases []vm.Cell
	Err    error
}

func (e *PhaseError) Error() string {
	return "phases " + vm.FormatCells(e.Phases) + ": " + e.Err.Error()
}

// Cause returns the underlying error.
func (e *PhaseError) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *PhaseError) Unwrap() error { return e.Err }

// Search runs program in a fresh circuit of the given topology for every
// permutation of phases, and returns the highest signal together with the
// permutation that produced it. On ties, the first permutation in the order
// returned by Permutations wins.
//
// The search stops on the first circuit failure, which is reported as a
// *PhaseError.
func Search(ctx context.Context, program []vm.Cell, topo Topology, phases []vm.Cell, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	perms := Permutations(phases)
	if len(perms) == 0 || len(phases) == 0 {
		return nil, errors.New("empty phase set")
	}
	signals := make([]vm.Cell, len(perms))

	logger().Infof("searching %d permutations of %v in %v, %d at a time", len(perms), phases, topo, cfg.parallel)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallel)
	for k, p := range perms {
		if gctx.Err() != nil {
			break
		}
		k, p := k, p
		g.Go(func() error {
			c, err := newCircuit(program, topo, p, cfg)
			if err != nil {
				return err
			}
			s, err := c.Run(gctx)
			if err != nil {
				return &PhaseError{Phases: p, Err: err}
			}
			signals[k] = s
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	best := 0
	for k := range signals {
		if signals[k] > signals[best] {
			best = k
		}
	}
	logger().Infof("best signal %d for phases %v", signals[best], perms[best])
	return &Result{Signal: signals[best], Phases: perms[best]}, nil
}
