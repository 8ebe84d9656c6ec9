// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"go.uber.org/appbase"
	"go.uber.org/appbase/dispatch"
)

// planner periodically posts a planning cycle to the dispatch queue.
type planner struct {
	cfg   *config
	log   *zap.Logger
	queue *dispatch.Queue

	done   chan struct{}
	wg     sync.WaitGroup
	cycles atomic.Int64
}

var _ appbase.Application = (*planner)(nil)

func newPlanner(cfg *config, log *zap.Logger, queue *dispatch.Queue) *planner {
	return &planner{cfg: cfg, log: log, queue: queue}
}

func (p *planner) Name() string { return "planner" }

func (p *planner) Init() error {
	if p.cfg.MaxSpeed <= 0 {
		return errors.Errorf("max_speed must be positive, got %v", p.cfg.MaxSpeed)
	}
	if p.cfg.Period <= 0 {
		return errors.Errorf("period must be positive, got %v", p.cfg.Period)
	}
	return nil
}

func (p *planner) Start() error {
	p.done = make(chan struct{})
	ticker := time.NewTicker(p.cfg.Period)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				if err := p.queue.Post(p.plan); err != nil {
					return
				}
			}
		}
	}()
	return nil
}

func (p *planner) plan() {
	n := p.cycles.Add(1)
	if p.cfg.Debug {
		p.log.Debug("planning cycle",
			zap.Int64("cycle", n),
			zap.Float64("max_speed", p.cfg.MaxSpeed),
		)
	}
}

func (p *planner) Stop() {
	close(p.done)
	p.wg.Wait()
	p.log.Info("planner stopped", zap.Int64("cycles", p.cycles.Load()))
}

// Cycles returns the number of planning cycles run so far.
func (p *planner) Cycles() int64 { return p.cycles.Load() }
