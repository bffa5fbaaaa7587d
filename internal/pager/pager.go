// Package pager implements fixed-size, 1-based pagination over an ordered list.
package pager

// DefaultPageSize is the number of questions shown per page
const DefaultPageSize = 15

// Pager tracks the current page of a list of total items
type Pager struct {
	total   int
	size    int
	current int
}

// New creates a pager at page 1 using DefaultPageSize
func New(total int) *Pager {
	return NewWithSize(total, DefaultPageSize)
}

// NewWithSize creates a pager at page 1. Non-positive sizes become DefaultPageSize.
func NewWithSize(total, size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	return &Pager{total: total, size: size, current: 1}
}

// Current returns the 1-based current page
func (p *Pager) Current() int { return p.current }

// TotalPages is ceil(total / size); zero for an empty list
func (p *Pager) TotalPages() int {
	return (p.total + p.size - 1) / p.size
}

// SetPage moves to page n. Pages outside [1, TotalPages] are rejected and
// leave the pager unchanged.
func (p *Pager) SetPage(n int) bool {
	if n < 1 || n > p.TotalPages() {
		return false
	}
	p.current = n
	return true
}

// Next advances one page unless already on the last
func (p *Pager) Next() bool {
	return p.SetPage(p.current + 1)
}

// Prev goes back one page unless already on the first
func (p *Pager) Prev() bool {
	return p.SetPage(p.current - 1)
}

// HasNext reports whether Next would move
func (p *Pager) HasNext() bool { return p.current < p.TotalPages() }

// HasPrev reports whether Prev would move
func (p *Pager) HasPrev() bool { return p.current > 1 }

// Bounds returns the half-open index range [start, end) of the current page
func (p *Pager) Bounds() (int, int) {
	start := (p.current - 1) * p.size
	if start > p.total {
		start = p.total
	}
	end := start + p.size
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Slice returns the items on p's current page
func Slice[T any](p *Pager, items []T) []T {
	start, end := p.Bounds()
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return items[start:end]
}
