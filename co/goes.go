// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Goes wraps a sync.WaitGroup to spawn a batch of fire-and-forget
// goroutines and wait for all of them to return.
type Goes struct {
	wg        sync.WaitGroup
	initOnce  sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

func (g *Goes) doneChan() chan struct{} {
	g.initOnce.Do(func() { g.done = make(chan struct{}) })
	return g.done
}

// Go spawns f as a tracked goroutine.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine spawned by Go has returned, and
// closes the channel returned by Done.
func (g *Goes) Wait() {
	g.wg.Wait()
	ch := g.doneChan()
	g.closeOnce.Do(func() { close(ch) })
}

// Done returns a channel that's closed once Wait has observed every
// spawned goroutine return.
func (g *Goes) Done() <-chan struct{} {
	return g.doneChan()
}
