// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Signal is a zero-value-usable, repeatable broadcast pulse: Broadcast
// wakes every Waiter registered so far and then rotates in a fresh
// channel, so a Waiter only ever observes the Broadcast call that
// happened after it was created — a Broadcast with no waiters yet
// registered has no effect on Waiters created afterward.
type Signal struct {
	mu sync.Mutex
	c  chan struct{}
}

// Waiter is a single registration against a Signal's current round.
type Waiter struct {
	c <-chan struct{}
}

// C returns the channel that closes on the next Broadcast.
func (w Waiter) C() <-chan struct{} {
	return w.c
}

func (s *Signal) current() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		s.c = make(chan struct{})
	}
	return s.c
}

// NewWaiter registers a waiter against the signal's current round.
func (s *Signal) NewWaiter() Waiter {
	return Waiter{c: s.current()}
}

// Broadcast closes every waiter registered against the current round
// and starts a new round for subsequent waiters.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		s.c = make(chan struct{})
	}
	close(s.c)
	s.c = make(chan struct{})
}
