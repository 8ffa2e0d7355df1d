package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/s0up4200/citadel/rickmorty"
)

type fetchKind int

const (
	kindInitial fetchKind = iota
	kindMore
	kindSearch
)

func (k fetchKind) String() string {
	switch k {
	case kindInitial:
		return "initial"
	case kindMore:
		return "more"
	default:
		return "search"
	}
}

// ticket tags one fetch with the context it was issued in
type ticket struct {
	id      string
	kind    fetchKind
	gen     uint64
	query   string
	cursor  string
	started time.Time
	cancel  context.CancelFunc
}

// Option configures a Controller
type Option func(*Controller)

// WithSearchDelay sets the debounce delay used by Search
func WithSearchDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.debouncer = NewDebouncer(d)
		}
	}
}

// WithNavigator sets the callback Select hands character ids to
func WithNavigator(navigate func(id int)) Option {
	return func(c *Controller) {
		c.navigate = navigate
	}
}

// Controller owns the character list shown by a browsing screen: the
// accumulated items, the pagination cursor, the search mode and the
// loading and error flags.
//
// LoadInitial, LoadMore, SearchNow, ClearSearch and Retry block until their
// fetch completes. Search returns immediately and fetches from a timer once
// the debounce delay has passed. Fetch failures never escape; they become
// StatusError with a message in State.
type Controller struct {
	source    rickmorty.PageFetcher
	logger    zerolog.Logger
	debouncer *Debouncer
	navigate  func(id int)

	mu      sync.Mutex
	state   State
	seen    map[int]struct{}
	gen     uint64
	pending *ticket
	failed  *ticket
	closed  bool

	subs    map[int]func(State)
	nextSub int
	queue   []State

	// notifyMu is held by whichever goroutine is delivering queued snapshots
	notifyMu sync.Mutex

	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a controller in browse mode with an empty list
func New(source rickmorty.PageFetcher, logger zerolog.Logger, opts ...Option) *Controller {
	baseCtx, stop := context.WithCancel(context.Background())

	c := &Controller{
		source:    source,
		logger:    logger,
		debouncer: NewDebouncer(DefaultSearchDelay),
		state: State{
			Mode:   ModeBrowse,
			Status: StatusIdle,
		},
		seen:    make(map[int]struct{}),
		subs:    make(map[int]func(State)),
		baseCtx: baseCtx,
		stop:    stop,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change.
// Snapshots arrive in the order the changes happened.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// LoadInitial fetches the first browse page and replaces the list with it.
// It does nothing while another first-page load is running.
func (c *Controller) LoadInitial(ctx context.Context) {
	c.mu.Lock()
	if c.closed || (c.pending != nil && c.pending.kind == kindInitial) {
		c.mu.Unlock()
		return
	}
	c.loadInitialLocked(ctx)
}

// LoadMore appends the page at the cursor. It does nothing at the last page,
// in search mode, or while any fetch is running.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.pending != nil || !c.state.HasMore() {
		c.mu.Unlock()
		return
	}
	c.loadMoreLocked(ctx)
}

// Search records query and schedules a name search once the debounce delay
// has passed without another call. A blank query is handled as ClearSearch,
// which is the only case that uses ctx.
func (c *Controller) Search(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.ClearSearch(ctx)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Query = query
	c.debouncer.Debounce(func() {
		c.fireSearch(trimmed)
	})
	c.unlockAndNotify()
}

// SearchNow runs a name search immediately, dropping any pending debounced one
func (c *Controller) SearchNow(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.ClearSearch(ctx)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.debouncer.Cancel()
	c.state.Query = query
	c.searchLocked(ctx, trimmed)
}

// ClearSearch drops any pending search, returns to browse mode and reloads
// the first browse page. Pages accumulated before the search are not restored.
func (c *Controller) ClearSearch(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.debouncer.Cancel()
	c.state.Query = ""
	c.loadInitialLocked(ctx)
}

// Retry re-issues the most recent failed fetch with the context it failed in
func (c *Controller) Retry(ctx context.Context) {
	c.mu.Lock()
	failed := c.failed
	if c.closed || failed == nil {
		c.mu.Unlock()
		return
	}

	c.logger.Debug().
		Str("kind", failed.kind.String()).
		Str("query", failed.query).
		Msg("Retrying failed fetch")

	switch failed.kind {
	case kindInitial:
		if c.pending != nil && c.pending.kind == kindInitial {
			c.mu.Unlock()
			return
		}
		c.loadInitialLocked(ctx)
	case kindMore:
		if c.pending != nil || c.state.Cursor == "" {
			c.mu.Unlock()
			return
		}
		c.loadMoreLocked(ctx)
	case kindSearch:
		c.debouncer.Cancel()
		c.state.Query = failed.query
		c.searchLocked(ctx, failed.query)
	}
}

// Select hands a character id to the navigator
func (c *Controller) Select(id int) {
	c.logger.Debug().Int("character_id", id).Msg("Character selected")
	if c.navigate != nil {
		c.navigate(id)
	}
}

// Close stops the debounce timer, cancels running fetches and waits for
// timer-started searches to return. The controller ignores calls afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.debouncer.Cancel()
	if c.pending != nil {
		c.pending.cancel()
	}
	c.stop()
	c.mu.Unlock()

	c.wg.Wait()
}

// fireSearch runs on the debounce timer goroutine
func (c *Controller) fireSearch(query string) {
	c.mu.Lock()
	if c.closed || strings.TrimSpace(c.state.Query) != query {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	defer c.wg.Done()

	c.searchLocked(c.baseCtx, query)
}

// The *Locked methods are entered with c.mu held and return with it released.

func (c *Controller) loadInitialLocked(ctx context.Context) {
	t, fetchCtx := c.begin(ctx, kindInitial, "", "")
	// a search cursor must not carry over into browse mode if this load fails
	if c.state.Mode != ModeBrowse {
		c.state.Cursor = ""
	}
	c.state.Mode = ModeBrowse
	c.state.Status = StatusLoadingInitial
	c.clearErrorLocked()
	c.unlockAndNotify()

	page, err := c.source.FirstPage(fetchCtx)
	c.finish(t, page, err)
}

func (c *Controller) loadMoreLocked(ctx context.Context) {
	t, fetchCtx := c.begin(ctx, kindMore, "", c.state.Cursor)
	c.state.Status = StatusLoadingMore
	c.clearErrorLocked()
	c.unlockAndNotify()

	page, err := c.source.NextPage(fetchCtx, t.cursor)
	c.finish(t, page, err)
}

func (c *Controller) searchLocked(ctx context.Context, query string) {
	t, fetchCtx := c.begin(ctx, kindSearch, query, "")
	c.state.Mode = ModeSearch
	c.state.Cursor = ""
	c.state.Status = StatusSearching
	c.clearErrorLocked()
	c.unlockAndNotify()

	page, err := c.source.SearchByName(fetchCtx, query)
	c.finish(t, page, err)
}

// begin registers a new in-flight fetch. Fetches that replace the list
// supersede, and cancel, whatever fetch was running before them.
func (c *Controller) begin(ctx context.Context, kind fetchKind, query, cursor string) (*ticket, context.Context) {
	if kind != kindMore {
		c.gen++
		if c.pending != nil {
			c.pending.cancel()
		}
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	t := &ticket{
		id:      uuid.NewString(),
		kind:    kind,
		gen:     c.gen,
		query:   query,
		cursor:  cursor,
		started: time.Now(),
		cancel:  cancel,
	}
	c.pending = t

	c.logger.Debug().
		Str("request_id", t.id).
		Str("kind", kind.String()).
		Str("query", query).
		Str("cursor", cursor).
		Msg("Starting fetch")

	return t, fetchCtx
}

// finish applies the result of t unless a newer fetch or query superseded it
func (c *Controller) finish(t *ticket, page *rickmorty.Page, err error) {
	t.cancel()

	c.mu.Lock()
	if c.pending == t {
		c.pending = nil
	}

	log := c.logger.With().
		Str("request_id", t.id).
		Str("kind", t.kind.String()).
		Dur("elapsed", time.Since(t.started)).
		Logger()

	stale := t.gen != c.gen ||
		(t.kind == kindSearch && strings.TrimSpace(c.state.Query) != t.query)
	if c.closed || stale {
		c.mu.Unlock()
		log.Debug().Str("query", t.query).Msg("Discarding stale response")
		return
	}

	if err != nil {
		c.failLocked(t, err)
		log.Warn().Err(err).Str("error_kind", c.state.ErrorKind.String()).Msg("Fetch failed")
		c.unlockAndNotify()
		return
	}

	switch t.kind {
	case kindInitial:
		c.replaceItemsLocked(page.Items)
	case kindMore:
		c.appendItemsLocked(page.Items)
	case kindSearch:
		c.replaceItemsLocked(page.Items)
		c.state.Mode = ModeSearch
	}
	c.state.Cursor = page.Next
	c.state.Status = StatusReady
	c.clearErrorLocked()
	c.failed = nil

	log.Debug().
		Int("received", len(page.Items)).
		Int("total", len(c.state.Items)).
		Bool("has_more", page.Next != "").
		Msg("Fetch complete")

	c.unlockAndNotify()
}

func (c *Controller) failLocked(t *ticket, err error) {
	kind, message := classify(err, t.query)

	c.state.Status = StatusError
	c.state.ErrorKind = kind
	c.state.ErrorMessage = message
	c.failed = t

	if kind == ErrorEmptyResult {
		c.replaceItemsLocked(nil)
		c.state.Cursor = ""
	}
	c.state.Blocking = len(c.state.Items) == 0
}

func (c *Controller) clearErrorLocked() {
	c.state.ErrorKind = ErrorNone
	c.state.ErrorMessage = ""
	c.state.Blocking = false
}

// replaceItemsLocked starts a fresh list; a repeated id within items keeps
// its first occurrence.
func (c *Controller) replaceItemsLocked(items []rickmorty.Character) {
	c.seen = make(map[int]struct{}, len(items))
	c.state.Items = make([]rickmorty.Character, 0, len(items))
	c.appendItemsLocked(items)
}

func (c *Controller) appendItemsLocked(items []rickmorty.Character) {
	for _, item := range items {
		if _, dup := c.seen[item.ID]; dup {
			continue
		}
		c.seen[item.ID] = struct{}{}
		c.state.Items = append(c.state.Items, item)
	}
}

// unlockAndNotify queues a snapshot of the current state, releases c.mu and
// delivers queued snapshots to subscribers.
func (c *Controller) unlockAndNotify() {
	c.queue = append(c.queue, c.state.clone())
	c.mu.Unlock()
	c.drain()
}

// drain delivers queued snapshots in order. A goroutine that finds another one
// already delivering leaves its snapshot to that goroutine, which rechecks the
// queue after releasing notifyMu.
func (c *Controller) drain() {
	for {
		if !c.notifyMu.TryLock() {
			return
		}

		for {
			c.mu.Lock()
			if len(c.queue) == 0 {
				c.mu.Unlock()
				break
			}
			snapshot := c.queue[0]
			c.queue = c.queue[1:]
			listeners := make([]func(State), 0, len(c.subs))
			for _, fn := range c.subs {
				listeners = append(listeners, fn)
			}
			c.mu.Unlock()

			for _, fn := range listeners {
				fn(snapshot)
			}
		}

		c.notifyMu.Unlock()

		c.mu.Lock()
		empty := len(c.queue) == 0
		c.mu.Unlock()
		if empty {
			return
		}
	}
}
