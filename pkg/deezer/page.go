package deezer

import (
	"context"
	"iter"
)

// Next fetches the page following prev.
//
// If prev carries a "next" URL, exactly that URL is requested and ok is
// true. Otherwise Next returns (nil, false, nil) without touching the
// network: the sequence is exhausted.
func (c *Client) Next(ctx context.Context, prev *Response) (page *Response, ok bool, err error) {
	if prev == nil {
		return nil, false, nil
	}
	next, hasNext := prev.Next()
	if !hasNext {
		return nil, false, nil
	}

	page, err = c.get(ctx, next)
	return page, true, err
}

// Pages iterates over first and every page after it. Iteration stops after
// the last page or at the first error, which is yielded with a nil page.
//
// The sequence is forward-only: each step costs one request.
func (c *Client) Pages(ctx context.Context, first *Response) iter.Seq2[*Response, error] {
	return func(yield func(*Response, error) bool) {
		page := first
		for page != nil {
			if !yield(page, nil) {
				return
			}

			next, ok, err := c.Next(ctx, page)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}
			page = next
		}
	}
}
