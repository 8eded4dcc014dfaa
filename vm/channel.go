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

import "sync"

// Channel is an unbounded FIFO queue of cells. It implements both Reader and
// Writer and is used to connect the output of an Instance to the input of
// another.
//
// Channels must be created with NewChannel. A Channel is safe for concurrent
// use, although each channel is meant to have a single producer and a single
// consumer.
type Channel struct {
	mu     sync.Mutex
	cond   sync.Cond // signaled on push and close
	q      []Cell
	closed bool
}

// NewChannel returns a new channel holding the given values.
func NewChannel(v ...Cell) *Channel {
	c := &Channel{q: append([]Cell(nil), v...)}
	c.cond.L = &c.mu
	return c
}

// Push appends v to the channel. It never blocks. Values pushed after Close
// are discarded.
func (c *Channel) Push(v Cell) {
	c.mu.Lock()
	if !c.closed {
		c.q = append(c.q, v)
		c.cond.Signal()
	}
	c.mu.Unlock()
}

// Pop removes and returns the oldest value in the channel, waiting for one to
// be pushed if the channel is empty. Once the channel is closed and empty, Pop
// returns ErrChannelClosed.
func (c *Channel) Pop() (Cell, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.q) == 0 && !c.closed {
		c.cond.Wait()
	}
	if len(c.q) == 0 {
		return 0, ErrChannelClosed
	}
	v := c.q[0]
	c.q = c.q[1:]
	return v, nil
}

// Close marks the end of the stream: no more values will be accepted, and
// blocked or future calls to Pop return ErrChannelClosed once the remaining
// values are consumed. Close may be called more than once.
func (c *Channel) Close() {
	c.mu.Lock()
	c.closed = true
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Len returns the number of values waiting in the channel.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.q)
}

// ReadCell implements Reader.
func (c *Channel) ReadCell() (Cell, error) { return c.Pop() }

// WriteCell implements Writer.
func (c *Channel) WriteCell(v Cell) error {
	c.Push(v)
	return nil
}
