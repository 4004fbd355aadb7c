// Package parallel provides helpers for evaluating work concurrently.
package parallel

import (
	"sync"
	"sync/atomic"
)

// ErrorCollector keeps the first error reported by concurrent workers and
// counts every failure. The zero value is ready to use.
//
//	var ec parallel.ErrorCollector
//	g.Go(func() error { ec.SetError(work()); return nil })
//	g.Wait()
//	if err := ec.Err(); err != nil {
//	    log.Printf("%d failures, first: %v", ec.Count(), err)
//	}
type ErrorCollector struct {
	once  sync.Once
	err   error
	count atomic.Int64
}

// SetError records err. Only the first non-nil error is kept; nil is ignored.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.count.Add(1)
	c.once.Do(func() {
		c.err = err
	})
}

// Err returns the first recorded error. Call it after the workers finished.
func (c *ErrorCollector) Err() error {
	return c.err
}

// Count returns the number of non-nil errors recorded.
func (c *ErrorCollector) Count() int {
	return int(c.count.Load())
}
