// Package fanout runs a function over a sequence in parallel while
// preserving input order.
package fanout

import "iter"

// Map applies fn to every element of seq using the given number of worker
// goroutines and yields the results in input order. With workers <= 1 the
// mapping runs inline. fn must be safe for concurrent use.
func Map[A, B any](seq iter.Seq[A], workers int, fn func(A) B) iter.Seq[B] {
	if workers <= 1 {
		return func(yield func(B) bool) {
			for a := range seq {
				if !yield(fn(a)) {
					return
				}
			}
		}
	}
	return func(yield func(B) bool) {
		// closed on early stop so the producer never blocks forever
		done := make(chan struct{})
		defer close(done)

		type job struct {
			arg A
			out chan B
		}
		jobs := make(chan job)
		pending := make(chan chan B, workers)

		go func() {
			defer close(jobs)
			defer close(pending)
			for a := range seq {
				out := make(chan B, 1)
				select {
				case pending <- out:
				case <-done:
					return
				}
				select {
				case jobs <- job{arg: a, out: out}:
				case <-done:
					return
				}
			}
		}()

		for range workers {
			go func() {
				for j := range jobs {
					j.out <- fn(j.arg)
				}
			}()
		}

		for out := range pending {
			if !yield(<-out) {
				return
			}
		}
	}
}
