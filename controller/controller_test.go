package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/citadel/rickmorty"
)

const testDelay = 20 * time.Millisecond

func newTestController(t *testing.T, src *fakeSource, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithSearchDelay(testDelay)}, opts...)
	c := New(src, zerolog.Nop(), opts...)
	t.Cleanup(c.Close)
	return c
}

func transportErr() error {
	return &rickmorty.TransportError{Op: "GET", URL: "http://test/character", Err: errors.New("connection refused")}
}

func TestNew(t *testing.T) {
	c := newTestController(t, &fakeSource{})

	s := c.State()
	assert.Empty(t, s.Items)
	assert.Equal(t, ModeBrowse, s.Mode)
	assert.Equal(t, StatusIdle, s.Status)
	assert.False(t, s.HasMore())
}

func TestLoadInitial(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", idRange(1, 20)...), nil
		},
	}
	c := newTestController(t, src)

	c.LoadInitial(context.Background())

	s := c.State()
	assert.Equal(t, idRange(1, 20), ids(s.Items))
	assert.Equal(t, "page-2", s.Cursor)
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, ModeBrowse, s.Mode)
	assert.Equal(t, ErrorNone, s.ErrorKind)
	assert.Empty(t, s.ErrorMessage)
	assert.True(t, s.HasMore())
}

func TestLoadInitialDedupesWithinPage(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("", 1, 2, 2, 3, 1), nil
		},
	}
	c := newTestController(t, src)

	c.LoadInitial(context.Background())

	assert.Equal(t, []int{1, 2, 3}, ids(c.State().Items))
}

func TestLoadInitialFailure(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    ErrorKind
		wantMessage string
	}{
		{
			name:        "transport",
			err:         transportErr(),
			wantKind:    ErrorTransport,
			wantMessage: MessageTransport,
		},
		{
			name:        "timeout",
			err:         context.DeadlineExceeded,
			wantKind:    ErrorTransport,
			wantMessage: MessageTransport,
		},
		{
			name:        "server error",
			err:         &rickmorty.APIError{StatusCode: 500},
			wantKind:    ErrorHTTP,
			wantMessage: "The character service returned an error (status 500). Try again.",
		},
		{
			name:        "undecodable",
			err:         errors.New("decode response: unexpected EOF"),
			wantKind:    ErrorHTTP,
			wantMessage: MessageBadResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{
				first: func(context.Context) (*rickmorty.Page, error) {
					return nil, tt.err
				},
			}
			c := newTestController(t, src)

			c.LoadInitial(context.Background())

			s := c.State()
			assert.Equal(t, StatusError, s.Status)
			assert.Equal(t, tt.wantKind, s.ErrorKind)
			assert.Equal(t, tt.wantMessage, s.ErrorMessage)
			assert.True(t, s.Blocking, "an error with no items should block the list")
			assert.Empty(t, s.Items)
		})
	}
}

func TestFailureAfterSearchDropsSearchCursor(t *testing.T) {
	tests := []struct {
		name   string
		reload func(c *Controller, ctx context.Context)
	}{
		{name: "clear search", reload: (*Controller).ClearSearch},
		{name: "load initial", reload: (*Controller).LoadInitial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail bool
			src := &fakeSource{
				first: func(context.Context) (*rickmorty.Page, error) {
					if fail {
						return nil, transportErr()
					}
					return page("page-2", 1, 2), nil
				},
				next: func(context.Context, string) (*rickmorty.Page, error) {
					return page("", 103, 104), nil
				},
				search: func(context.Context, string) (*rickmorty.Page, error) {
					return page("search-rick-2", 101, 102), nil
				},
			}
			c := newTestController(t, src)
			ctx := context.Background()

			c.SearchNow(ctx, "rick")
			require.Equal(t, "search-rick-2", c.State().Cursor)

			fail = true
			tt.reload(c, ctx)

			s := c.State()
			assert.Equal(t, ModeBrowse, s.Mode)
			assert.Equal(t, StatusError, s.Status)
			assert.Empty(t, s.Cursor)
			assert.False(t, s.HasMore())

			c.LoadMore(ctx)
			assert.Equal(t, []int{101, 102}, ids(c.State().Items))
			assert.Equal(t, []string{"search:rick", "first"}, src.Calls())

			fail = false
			c.Retry(ctx)

			s = c.State()
			assert.Equal(t, StatusReady, s.Status)
			assert.Equal(t, []int{1, 2}, ids(s.Items))
			assert.Equal(t, "page-2", s.Cursor)
			assert.Equal(t, []string{"search:rick", "first", "first"}, src.Calls())
		})
	}
}

func TestCursorAfterFailureBelongsToCurrentMode(t *testing.T) {
	tests := []struct {
		name        string
		run         func(c *Controller, ctx context.Context)
		wantMode    Mode
		wantCursor  string
		wantHasMore bool
	}{
		{
			name: "browse reload fails",
			run: func(c *Controller, ctx context.Context) {
				c.LoadInitial(ctx)
			},
			wantMode:    ModeBrowse,
			wantCursor:  "page-2",
			wantHasMore: true,
		},
		{
			name: "load more fails",
			run: func(c *Controller, ctx context.Context) {
				c.LoadMore(ctx)
			},
			wantMode:    ModeBrowse,
			wantCursor:  "page-2",
			wantHasMore: true,
		},
		{
			name: "search fails",
			run: func(c *Controller, ctx context.Context) {
				c.SearchNow(ctx, "rick")
			},
			wantMode:   ModeSearch,
			wantCursor: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail bool
			failing := func() error {
				if fail {
					return &rickmorty.APIError{StatusCode: 503}
				}
				return nil
			}
			src := &fakeSource{
				first: func(context.Context) (*rickmorty.Page, error) {
					if err := failing(); err != nil {
						return nil, err
					}
					return page("page-2", 1, 2), nil
				},
				next: func(context.Context, string) (*rickmorty.Page, error) {
					return nil, failing()
				},
				search: func(context.Context, string) (*rickmorty.Page, error) {
					return nil, failing()
				},
			}
			c := newTestController(t, src)
			ctx := context.Background()
			c.LoadInitial(ctx)

			fail = true
			tt.run(c, ctx)

			s := c.State()
			assert.Equal(t, StatusError, s.Status)
			assert.Equal(t, tt.wantMode, s.Mode)
			assert.Equal(t, tt.wantCursor, s.Cursor)
			assert.Equal(t, tt.wantHasMore, s.HasMore())
			assert.Equal(t, []int{1, 2}, ids(s.Items))
		})
	}
}

func TestLoadInitialIgnoredWhileRunning(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			close(started)
			<-release
			return page("", 1), nil
		},
	}
	c := newTestController(t, src)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.LoadInitial(context.Background())
	}()

	<-started
	assert.Equal(t, StatusLoadingInitial, c.State().Status)

	c.LoadInitial(context.Background())
	assert.Equal(t, []string{"first"}, src.Calls())

	close(release)
	wg.Wait()

	assert.Equal(t, StatusReady, c.State().Status)
	assert.Equal(t, []string{"first"}, src.Calls())
}

func TestLoadMore(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", idRange(1, 20)...), nil
		},
		next: func(_ context.Context, cursor string) (*rickmorty.Page, error) {
			switch cursor {
			case "page-2":
				// 20 overlaps the first page
				return page("page-3", idRange(20, 40)...), nil
			default:
				return page("", 41, 42), nil
			}
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	c.LoadInitial(ctx)
	c.LoadMore(ctx)

	s := c.State()
	assert.Equal(t, idRange(1, 40), ids(s.Items))
	assert.Equal(t, "page-3", s.Cursor)
	assert.Equal(t, StatusReady, s.Status)

	c.LoadMore(ctx)

	s = c.State()
	assert.Equal(t, idRange(1, 42), ids(s.Items))
	assert.Empty(t, s.Cursor)
	assert.False(t, s.HasMore())
	assert.Equal(t, []string{"first", "next:page-2", "next:page-3"}, src.Calls())
}

func TestLoadMoreAtLastPageIsNoop(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("", 1, 2, 3), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	c.LoadInitial(ctx)
	before := c.State()

	rec := &recorder{}
	c.Subscribe(rec.add)

	c.LoadMore(ctx)
	c.LoadMore(ctx)

	if diff := cmp.Diff(before, c.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
	assert.Empty(t, rec.States())
	assert.Equal(t, []string{"first"}, src.Calls())
}

func TestLoadMoreSkippedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", 1, 2), nil
		},
		next: func(context.Context, string) (*rickmorty.Page, error) {
			close(started)
			<-release
			return page("page-3", 3, 4), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()
	c.LoadInitial(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.LoadMore(ctx)
	}()

	<-started
	assert.Equal(t, StatusLoadingMore, c.State().Status)
	c.LoadMore(ctx)

	close(release)
	wg.Wait()

	assert.Equal(t, []string{"first", "next:page-2"}, src.Calls())
	assert.Equal(t, []int{1, 2, 3, 4}, ids(c.State().Items))
}

func TestLoadMoreFailureKeepsItems(t *testing.T) {
	var fail bool
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", 1, 2), nil
		},
		next: func(context.Context, string) (*rickmorty.Page, error) {
			if fail {
				return nil, transportErr()
			}
			return page("", 3), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()
	c.LoadInitial(ctx)

	fail = true
	c.LoadMore(ctx)

	s := c.State()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, ErrorTransport, s.ErrorKind)
	assert.False(t, s.Blocking, "existing items should stay visible under the error")
	assert.Equal(t, []int{1, 2}, ids(s.Items))
	assert.Equal(t, "page-2", s.Cursor)

	fail = false
	c.Retry(ctx)

	s = c.State()
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, []int{1, 2, 3}, ids(s.Items))
	assert.Empty(t, s.ErrorMessage)
	assert.Equal(t, []string{"first", "next:page-2", "next:page-2"}, src.Calls())
}

func TestLoadMoreInSearchModeIsNoop(t *testing.T) {
	src := &fakeSource{
		search: func(context.Context, string) (*rickmorty.Page, error) {
			return page("search-2", 1), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	c.SearchNow(ctx, "rick")
	c.LoadMore(ctx)

	s := c.State()
	assert.Equal(t, ModeSearch, s.Mode)
	assert.False(t, s.HasMore())
	assert.Equal(t, []string{"search:rick"}, src.Calls())
}

func TestSearchDebounce(t *testing.T) {
	src := &fakeSource{
		search: func(_ context.Context, query string) (*rickmorty.Page, error) {
			return page("", 1, 2), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	c.Search(ctx, "r")
	c.Search(ctx, "ri")
	c.Search(ctx, "ric")
	c.Search(ctx, "rick")

	assert.Equal(t, "rick", c.State().Query)

	require.Eventually(t, func() bool {
		return c.State().Status == StatusReady
	}, time.Second, 5*time.Millisecond)

	s := c.State()
	assert.Equal(t, ModeSearch, s.Mode)
	assert.Equal(t, []int{1, 2}, ids(s.Items))

	// no further fetch arrives after the quiet period
	time.Sleep(3 * testDelay)
	assert.Equal(t, []string{"search:rick"}, src.Calls())
}

func TestSearchTrimsQuery(t *testing.T) {
	src := &fakeSource{
		search: func(context.Context, string) (*rickmorty.Page, error) {
			return page("", 1), nil
		},
	}
	c := newTestController(t, src)

	c.SearchNow(context.Background(), "  rick ")

	assert.Equal(t, []string{"search:rick"}, src.Calls())
	assert.Equal(t, "  rick ", c.State().Query)
	assert.Equal(t, StatusReady, c.State().Status)
}

func TestSearchEmptyResult(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", 1, 2, 3), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()
	c.LoadInitial(ctx)

	c.SearchNow(ctx, "zzz")

	s := c.State()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, ErrorEmptyResult, s.ErrorKind)
	assert.Equal(t, `No characters found matching "zzz".`, s.ErrorMessage)
	assert.True(t, s.Blocking)
	assert.Empty(t, s.Items)
	assert.Empty(t, s.Cursor)
	assert.Equal(t, ModeSearch, s.Mode)
}

func TestSearchTransportFailureKeepsItems(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", 1, 2, 3), nil
		},
		search: func(context.Context, string) (*rickmorty.Page, error) {
			return nil, transportErr()
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()
	c.LoadInitial(ctx)

	c.SearchNow(ctx, "rick")

	s := c.State()
	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, ErrorTransport, s.ErrorKind)
	assert.False(t, s.Blocking)
	assert.Equal(t, []int{1, 2, 3}, ids(s.Items))
}

func TestSearchBlankQueryClearsSearch(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", 1, 2), nil
		},
		search: func(context.Context, string) (*rickmorty.Page, error) {
			return page("", 7), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	c.SearchNow(ctx, "rick")
	require.Equal(t, ModeSearch, c.State().Mode)

	c.Search(ctx, "   ")

	s := c.State()
	assert.Equal(t, ModeBrowse, s.Mode)
	assert.Empty(t, s.Query)
	assert.Equal(t, []int{1, 2}, ids(s.Items))
	assert.Equal(t, "page-2", s.Cursor)
	assert.Equal(t, []string{"search:rick", "first"}, src.Calls())
}

func TestClearSearchCancelsPendingSearch(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(t, src)
	ctx := context.Background()

	c.Search(ctx, "rick")
	c.ClearSearch(ctx)

	time.Sleep(3 * testDelay)
	assert.Equal(t, []string{"first"}, src.Calls())
	assert.Equal(t, ModeBrowse, c.State().Mode)
}

func TestSearchSupersededResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{
		search: func(_ context.Context, query string) (*rickmorty.Page, error) {
			if query == "rick" {
				close(started)
				// ignores cancellation so the late answer reaches the controller
				<-release
				return page("", 1), nil
			}
			return page("", 2), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	rec := &recorder{}
	c.Subscribe(rec.add)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.SearchNow(ctx, "rick")
	}()

	<-started
	c.SearchNow(ctx, "morty")
	close(release)
	wg.Wait()

	s := c.State()
	assert.Equal(t, "morty", s.Query)
	assert.Equal(t, []int{2}, ids(s.Items))
	assert.Equal(t, StatusReady, s.Status)

	for _, snap := range rec.States() {
		assert.NotContains(t, ids(snap.Items), 1, "stale search result was published")
	}
}

func TestSearchResponseForOldQueryDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("", 10, 11), nil
		},
		search: func(_ context.Context, query string) (*rickmorty.Page, error) {
			if query == "rick" {
				close(started)
				<-release
				return page("", 1), nil
			}
			return page("", 2), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()
	c.LoadInitial(ctx)

	rec := &recorder{}
	c.Subscribe(rec.add)

	c.Search(ctx, "rick")
	<-started

	// the user keeps typing while the first search is in flight
	c.Search(ctx, "morty")
	close(release)

	require.Eventually(t, func() bool {
		s := c.State()
		return s.Status == StatusReady && s.Mode == ModeSearch
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []int{2}, ids(c.State().Items))
	assert.Equal(t, []string{"first", "search:rick", "search:morty"}, src.Calls())

	for _, snap := range rec.States() {
		assert.NotContains(t, ids(snap.Items), 1, "stale search result was published")
	}
}

func TestLoadInitialSupersedesSearch(t *testing.T) {
	started := make(chan struct{})
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", 1, 2), nil
		},
		search: func(ctx context.Context, _ string) (*rickmorty.Page, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.SearchNow(ctx, "rick")
	}()

	<-started
	c.ClearSearch(ctx)
	wg.Wait()

	s := c.State()
	assert.Equal(t, ModeBrowse, s.Mode)
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, ErrorNone, s.ErrorKind, "the canceled search must not surface an error")
	assert.Equal(t, []int{1, 2}, ids(s.Items))
}

func TestRetryInitial(t *testing.T) {
	var attempts int
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			attempts++
			if attempts == 1 {
				return nil, transportErr()
			}
			return page("page-2", 1, 2, 3), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	c.LoadInitial(ctx)
	require.Equal(t, StatusError, c.State().Status)

	c.Retry(ctx)

	s := c.State()
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, []int{1, 2, 3}, ids(s.Items))
	assert.False(t, s.Blocking)
	assert.Empty(t, s.ErrorMessage)
}

func TestRetrySearch(t *testing.T) {
	var attempts int
	src := &fakeSource{
		search: func(_ context.Context, query string) (*rickmorty.Page, error) {
			attempts++
			if attempts == 1 {
				return nil, &rickmorty.APIError{StatusCode: 502}
			}
			return page("", 5, 6), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	c.SearchNow(ctx, "rick")
	require.Equal(t, ErrorHTTP, c.State().ErrorKind)

	c.Retry(ctx)

	s := c.State()
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, ModeSearch, s.Mode)
	assert.Equal(t, "rick", s.Query)
	assert.Equal(t, []int{5, 6}, ids(s.Items))
	assert.Equal(t, []string{"search:rick", "search:rick"}, src.Calls())
}

func TestRetryWithoutFailureIsNoop(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(t, src)
	ctx := context.Background()

	c.Retry(ctx)
	assert.Empty(t, src.Calls())

	c.LoadInitial(ctx)
	c.Retry(ctx)
	assert.Equal(t, []string{"first"}, src.Calls())
}

func TestSubscribe(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", 1), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	rec := &recorder{}
	unsubscribe := c.Subscribe(rec.add)

	c.LoadInitial(ctx)
	assert.Equal(t, []Status{StatusLoadingInitial, StatusReady}, rec.Statuses())

	unsubscribe()
	c.LoadMore(ctx)
	assert.Len(t, rec.States(), 2)
}

func TestSubscriberMayReadState(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("", 1), nil
		},
	}
	c := newTestController(t, src)

	var got []Status
	c.Subscribe(func(State) {
		got = append(got, c.State().Status)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.LoadInitial(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("LoadInitial deadlocked with a subscriber reading state")
	}
	assert.Equal(t, []Status{StatusLoadingInitial, StatusReady}, got)
}

func TestSearchModeAlwaysHasQuery(t *testing.T) {
	src := &fakeSource{
		first: func(context.Context) (*rickmorty.Page, error) {
			return page("page-2", 1, 2), nil
		},
		search: func(context.Context, string) (*rickmorty.Page, error) {
			return page("", 3), nil
		},
	}
	c := newTestController(t, src)
	ctx := context.Background()

	rec := &recorder{}
	c.Subscribe(rec.add)

	c.LoadInitial(ctx)
	c.SearchNow(ctx, "rick")
	c.Search(ctx, "")
	c.SearchNow(ctx, "morty")
	c.ClearSearch(ctx)

	for _, s := range rec.States() {
		if s.Mode == ModeSearch {
			assert.NotEmpty(t, s.Query)
		}
		if s.Mode == ModeSearch && s.HasMore() {
			t.Errorf("search mode reported more pages: %+v", s)
		}
	}
}

func TestSelect(t *testing.T) {
	var selected []int
	c := newTestController(t, &fakeSource{}, WithNavigator(func(id int) {
		selected = append(selected, id)
	}))

	c.Select(1)
	c.Select(42)

	assert.Equal(t, []int{1, 42}, selected)
}

func TestSelectWithoutNavigator(t *testing.T) {
	c := newTestController(t, &fakeSource{})
	assert.NotPanics(t, func() { c.Select(1) })
}

func TestClose(t *testing.T) {
	src := &fakeSource{}
	c := New(src, zerolog.Nop(), WithSearchDelay(testDelay))

	c.Search(context.Background(), "rick")
	c.Close()

	time.Sleep(3 * testDelay)
	assert.Empty(t, src.Calls())

	c.LoadInitial(context.Background())
	assert.Empty(t, src.Calls())

	assert.NotPanics(t, c.Close)
}

func TestCloseCancelsRunningSearch(t *testing.T) {
	started := make(chan struct{})
	src := &fakeSource{
		search: func(ctx context.Context, _ string) (*rickmorty.Page, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	c := New(src, zerolog.Nop(), WithSearchDelay(time.Millisecond))

	c.Search(context.Background(), "rick")
	<-started

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Close()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not cancel the running search")
	}
	assert.Equal(t, StatusSearching, c.State().Status)
}
