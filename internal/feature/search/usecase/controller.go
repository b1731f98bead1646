package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"stbr_web/internal/feature/search/domain/entity"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/shared/debounce"
)

// Renderer displays the current suggestion list. Every call is a full replace.
// Render is called with the controller's lock held and must not call back into the Controller.
type Renderer interface {
	Render(matches []entity.Match)
}

// Searcher は Controller が利用する検索処理です。*SearchUsecase が実装します。
type Searcher interface {
	Search(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error)
}

type query struct {
	keywords string
	class    asset.Class
	input    uint64
}

// Controller drives search-as-you-type for one session: it debounces input,
// keeps at most one live search token, and renders only the result of the
// latest token.
type Controller struct {
	search   Searcher
	render   Renderer
	debounce *debounce.Debouncer[query]

	mu     sync.Mutex
	input  uint64 // bumped on every Input and Clear
	seq    uint64 // identifies the live search token
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewController creates a Controller. A non-positive wait uses debounce.DefaultWait.
func NewController(search Searcher, render Renderer, wait time.Duration) *Controller {
	c := &Controller{search: search, render: render}
	c.debounce = debounce.New(wait, c.dispatch)
	return c
}

// Input handles one keystroke. Empty input clears the list immediately and
// invalidates any pending or in-flight search.
func (c *Controller) Input(keywords string, class asset.Class) {
	kw := strings.TrimSpace(keywords)
	if kw == "" {
		c.Clear()
		return
	}
	// 世代の採番とTriggerを同じロック内で行い、並行呼び出しでも最後の入力が生き残るようにする
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input++
	c.debounce.Trigger(query{keywords: kw, class: class, input: c.input})
}

// Clear hides the list and drops pending and in-flight searches.
func (c *Controller) Clear() {
	c.debounce.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.input++
	c.supersede()
	c.render.Render(nil)
}

// Select is click-to-select: it clears the list and returns the chosen symbol.
func (c *Controller) Select(m entity.Match) string {
	c.Clear()
	return m.Symbol
}

// Close stops the controller and waits for in-flight searches to finish.
func (c *Controller) Close() {
	c.debounce.Stop()

	c.mu.Lock()
	c.closed = true
	c.supersede()
	c.mu.Unlock()

	c.wg.Wait()
}

// dispatch は新しい検索トークンを発行し、前回のトークンをキャンセルしてから検索を開始します。
func (c *Controller) dispatch(q query) {
	c.mu.Lock()
	// The debounce timer may already be running when a later Input or Clear arrives.
	if c.closed || q.input != c.input {
		c.mu.Unlock()
		return
	}
	c.supersede()
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	seq := c.seq
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer cancel()

		matches, err := c.search.Search(ctx, q.keywords, q.class)
		if err != nil {
			slog.Debug("search superseded", "keywords", q.keywords, "asset_type", q.class)
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		// A superseded token may still complete; its result is discarded.
		if seq != c.seq || ctx.Err() != nil {
			return
		}
		c.render.Render(entity.Cap(matches))
	}()
}

// supersede invalidates the live token. Callers hold c.mu.
func (c *Controller) supersede() {
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
