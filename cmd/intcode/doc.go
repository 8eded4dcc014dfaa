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

// The intcode command runs Intcode programs.
//
// By default, the program is run in a single VM instance. INPUT values are
// read from the -input flag or from stdin, and OUTPUT values are written to
// stdout, one per line. With -phases, the program is run in circuits of
// several instances, one per phase setting, and the command prints the best
// signal followed by the phase settings producing it. With -find, the command
// searches the noun and verb producing the -target value at address 0.
//
// Usage:
//
//	intcode [flags] program
//
//	-config file
//		  load settings from TOML file
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump memory upon exit
//	-find
//		  search the noun and verb producing -target at address 0
//	-input values
//		  comma separated input values (default: read from stdin)
//	-limit int
//		  upper bound for nouns and verbs with -find (default 99)
//	-mem int
//		  memory size in cells (default 100000)
//	-noun value
//		  store value at address 1 before running (-1: no patch) (default -1)
//	-parallel int
//		  number of circuits evaluated concurrently (default number of CPUs)
//	-phases settings
//		  search the best permutation of phase settings
//	-target value
//		  target value for -find
//	-timeout duration
//		  abort after duration (0: no timeout)
//	-topology value
//		  circuit topology for -phases: line or ring (default line)
//	-v int
//		  log verbosity (0: notices, 1: info, 2: debug)
//	-verb value
//		  store value at address 2 before running (-1: no patch) (default -1)
//
// Settings in the configuration file use the flag names, with mem_size for
// -mem. Explicitly set flags override the configuration file:
//
//	program = "amplifiers.txt"
//	topology = "ring"
//	phases = [5, 6, 7, 8, 9]
//	timeout = "10s"
//
// When stdin is a terminal, the command prompts for each INPUT value.
package main
