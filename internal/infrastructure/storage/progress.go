package storage

import "io"

// ProgressFunc receives upload progress as a 0-100 percentage.
type ProgressFunc func(percent float64)

// progressTracker satisfies the io.Reader hook MinIO uses to report
// transferred bytes. Each Read call corresponds to one chunk boundary.
type progressTracker struct {
	total       int64
	transferred int64
	fn          ProgressFunc
}

// NewProgressTracker reports 0 immediately and 100 no later than the
// final chunk. A nil fn yields a nil tracker, which disables reporting.
func NewProgressTracker(total int64, fn ProgressFunc) io.Reader {
	if fn == nil {
		return nil
	}
	fn(0)
	return &progressTracker{total: total, fn: fn}
}

func (p *progressTracker) Read(b []byte) (int, error) {
	n := len(b)
	p.transferred += int64(n)

	percent := 100.0
	if p.total > 0 {
		percent = float64(p.transferred) / float64(p.total) * 100
		if percent > 100 {
			percent = 100
		}
	}
	p.fn(percent)

	return n, nil
}
