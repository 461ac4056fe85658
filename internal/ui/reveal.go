package ui

import "time"

// Reveal becomes visible once Delay has elapsed since mount and then stays
// visible.
type Reveal struct {
	Delay   time.Duration
	Visible bool
}

// Elapsed applies the time since mount.
func (r Reveal) Elapsed(since time.Duration) Reveal {
	if !r.Visible && since >= r.Delay {
		r.Visible = true
	}
	return r
}

// Stagger builds n reveals whose delays grow by step.
func Stagger(n int, step time.Duration) []Reveal {
	if n < 0 {
		n = 0
	}
	rs := make([]Reveal, n)
	for i := range rs {
		rs[i].Delay = time.Duration(i) * step
	}
	return rs
}

// ElapseAll applies since to every reveal and reports whether all are now
// visible.
func ElapseAll(rs []Reveal, since time.Duration) bool {
	all := true
	for i := range rs {
		rs[i] = rs[i].Elapsed(since)
		all = all && rs[i].Visible
	}
	return all
}

// Progress maps a reveal onto an entrance offset: rows still to slide before
// the element sits in place. Hidden elements sit at full offset.
func (r Reveal) Progress(since time.Duration, slide time.Duration, offset int) int {
	if !r.Visible {
		return offset
	}
	if slide <= 0 {
		return 0
	}
	done := since - r.Delay
	if done >= slide {
		return 0
	}
	left := offset - int(float64(offset)*float64(done)/float64(slide))
	if left < 0 {
		left = 0
	}
	return left
}
