package fake

import (
	"errors"
	"sync"
)

// APIResponse is the canned result of one fake API call.
type APIResponse struct {
	response interface{}
	err      error
}

var ErrDummy = errors.New("fail")

func R(r interface{}, e error) *APIResponse {
	return &APIResponse{response: r, err: e}
}

// result returns the response as *T. A nil APIResponse yields an empty
// output so that tests only configure the calls they care about.
func result[T any](r *APIResponse) (*T, error) {
	if r == nil {
		return new(T), nil
	}
	out, ok := r.response.(*T)
	if !ok {
		if r.err == nil {
			return new(T), nil
		}
		return nil, r.err
	}
	return out, r.err
}

// Pages returns the responses in order. The last one is repeated when more
// calls are made than responses were given.
type Pages struct {
	mu        sync.Mutex
	responses []*APIResponse
	next      int
}

func P(responses ...*APIResponse) *Pages {
	return &Pages{responses: responses}
}

func (p *Pages) pop() *APIResponse {
	if p == nil || len(p.responses) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	r := p.responses[p.next]
	if p.next < len(p.responses)-1 {
		p.next++
	}
	return r
}

func page[T any](p *Pages) (*T, error) {
	return result[T](p.pop())
}
