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

package vm_test

import (
	"fmt"
	"os"

	"github.com/db47h/intcode/vm"
)

// Runs a program that outputs a copy of itself.
func ExampleInstance_Run() {
	quine := []vm.Cell{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}

	i, err := vm.New(quine, vm.Output(vm.NewTextWriter(os.Stdout, ",")))
	if err == nil {
		err = i.Run()
	}
	if err != nil {
		panic(err)
	}
	fmt.Println()
	fmt.Println(i.InstructionCount(), "instructions")

	// Output:
	// 109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99,
	// 81 instructions
}

// Shows how to chain two instances with a Channel. The first instance reads
// its phase, then a value from the caller, and sends their sum downstream.
func ExampleChannel() {
	prog := []vm.Cell{3, 11, 3, 12, 1, 11, 12, 11, 4, 11, 99, 0, 0}

	in, link := vm.NewChannel(100), vm.NewChannel()
	var out vm.Buffer
	first, _ := vm.New(prog, vm.Phase(1), vm.Input(in), vm.Output(link))
	second, _ := vm.New(prog, vm.Phase(20), vm.Input(link), vm.Output(&out))

	done := make(chan error)
	go func() {
		err := first.Run()
		link.Close()
		done <- err
	}()
	if err := second.Run(); err != nil {
		fmt.Println(err)
	}
	if err := <-done; err != nil {
		fmt.Println(err)
	}
	fmt.Println(out)

	// Output:
	// [121]
}
