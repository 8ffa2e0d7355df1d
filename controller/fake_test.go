package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/s0up4200/citadel/rickmorty"
)

// fakeSource records every fetch and answers from per-endpoint handlers
type fakeSource struct {
	mu     sync.Mutex
	calls  []string
	first  func(ctx context.Context) (*rickmorty.Page, error)
	next   func(ctx context.Context, cursor string) (*rickmorty.Page, error)
	search func(ctx context.Context, query string) (*rickmorty.Page, error)
}

func (f *fakeSource) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeSource) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSource) FirstPage(ctx context.Context) (*rickmorty.Page, error) {
	f.record("first")
	if f.first == nil {
		return &rickmorty.Page{Items: []rickmorty.Character{}}, nil
	}
	return f.first(ctx)
}

func (f *fakeSource) NextPage(ctx context.Context, cursor string) (*rickmorty.Page, error) {
	f.record("next:" + cursor)
	if f.next == nil {
		return &rickmorty.Page{Items: []rickmorty.Character{}}, nil
	}
	return f.next(ctx, cursor)
}

func (f *fakeSource) SearchByName(ctx context.Context, query string) (*rickmorty.Page, error) {
	f.record("search:" + query)
	if f.search == nil {
		return nil, &rickmorty.EmptyResultError{Query: query}
	}
	return f.search(ctx, query)
}

// characters builds placeholder characters with the given ids
func characters(ids ...int) []rickmorty.Character {
	out := make([]rickmorty.Character, 0, len(ids))
	for _, id := range ids {
		out = append(out, rickmorty.Character{
			ID:     id,
			Name:   fmt.Sprintf("Character %d", id),
			Status: rickmorty.StatusAlive,
		})
	}
	return out
}

func idRange(from, to int) []int {
	ids := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, i)
	}
	return ids
}

func ids(items []rickmorty.Character) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func page(next string, ids ...int) *rickmorty.Page {
	return &rickmorty.Page{Items: characters(ids...), Next: next}
}

// recorder collects every snapshot a controller publishes
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) add(s State) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

func (r *recorder) States() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func (r *recorder) Statuses() []Status {
	var out []Status
	for _, s := range r.States() {
		out = append(out, s.Status)
	}
	return out
}
