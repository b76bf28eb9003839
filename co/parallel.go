// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "runtime"

// Parallel runs enqueue on a separate goroutine to feed a queue of
// work, fanning it out across GOMAXPROCS worker goroutines. The
// returned channel is closed once enqueue has returned and every queued
// func has run.
func Parallel(enqueue func(queue chan<- func())) <-chan struct{} {
	n := runtime.GOMAXPROCS(0)
	queue := make(chan func())
	done := make(chan struct{})

	var g Goes
	for i := 0; i < n; i++ {
		g.Go(func() {
			for f := range queue {
				f()
			}
		})
	}

	go func() {
		enqueue(queue)
		close(queue)
		g.Wait()
		close(done)
	}()

	return done
}
