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

// Package circuit wires several Intcode VM instances together.
//
// A circuit is a fixed set of units, each running its own copy of the same
// program, connected by vm.Channel values. In a Line, the output of unit k
// feeds the input of unit k+1. In a Ring, the output of the last unit is also
// fed back to the first unit, so that values keep flowing until all units
// halt. Each unit receives a distinct phase setting as its first input, and
// the first unit receives the signal 0 right after its phase.
//
// Units run concurrently, one goroutine per unit. A circuit is fully isolated
// from other circuits: several circuits can run in parallel.
package circuit
