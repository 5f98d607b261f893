package rotation

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/retailqa/scanbench/backend/internal/encode"
	"github.com/retailqa/scanbench/backend/internal/errors"
	"github.com/retailqa/scanbench/backend/internal/logging"
	"github.com/retailqa/scanbench/backend/internal/models"
)

// State is the playback state of the engine.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// DemoSource supplies fallback GTINs when an item carries no source value.
type DemoSource interface {
	NextDemoValue() string
}

// ActivityLog receives every newly generated payload exactly once. Replayed
// history entries are never reported.
type ActivityLog interface {
	AddActivity(kind, payload string) error
}

// RenderSink pushes a code pair to the display surface. Calls are
// fire-and-forget: a sink failure is logged and never reaches the state
// machine.
type RenderSink interface {
	Render(primary Code, secondary *Code) error
}

const (
	defaultIntervalSeconds = 10.0
	defaultQuantum         = 100 * time.Millisecond
)

// Config wires an Engine to its collaborators.
type Config struct {
	Demo     DemoSource
	Activity ActivityLog
	Sink     RenderSink

	IntervalSeconds float64
	Quantum         time.Duration
	Seed            int64
}

// Engine is the rotation state machine for one tab. All methods are safe for
// concurrent use; the periodic timer runs on its own goroutine and funnels
// through the same mutex.
type Engine struct {
	mu        sync.Mutex
	state     State
	session   *Session
	composite CompositeMode

	interval  time.Duration
	remaining time.Duration
	quantum   time.Duration

	// timerGen numbers timer arms; a stale goroutine observes a newer
	// generation and exits without ticking (clear-before-arm).
	timerGen int
	stopCh   chan struct{}

	demo     DemoSource
	activity ActivityLog
	sink     RenderSink
	rng      *rand.Rand
}

// NewEngine creates an idle engine.
func NewEngine(cfg Config) *Engine {
	interval := cfg.IntervalSeconds
	if interval <= 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		interval = defaultIntervalSeconds
	}
	quantum := cfg.Quantum
	if quantum <= 0 {
		quantum = defaultQuantum
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		state:     StateIdle,
		composite: CompositeOff,
		interval:  time.Duration(interval * float64(time.Second)),
		quantum:   quantum,
		demo:      cfg.Demo,
		activity:  cfg.Activity,
		sink:      cfg.Sink,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Start snapshots the items, produces and displays the first payload, and
// arms the timer. An empty item list is rejected with no state transition, as
// is a list where every item fails to encode.
func (e *Engine) Start(items []models.Item) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(items) == 0 {
		return errors.New(errors.ErrNothingSelected, "no active items to rotate")
	}

	snapshot := make([]models.Item, len(items))
	copy(snapshot, items)
	session := &Session{Items: snapshot}

	entry, err := e.generate(session)
	if err != nil {
		return err
	}

	e.session = session
	e.state = StateRunning
	e.remaining = e.interval
	e.armTimer()
	e.render(entry)

	logging.Info("rotation started", map[string]interface{}{
		"items":    len(snapshot),
		"skipped":  session.Skipped,
		"interval": e.interval.Seconds(),
	})
	return nil
}

// Stop discards the session and its history. Stopping an idle engine is a
// no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateIdle {
		return
	}
	e.disarmTimer()
	e.session = nil
	e.state = StateIdle
	logging.Info("rotation stopped")
}

// Pause stops the timer without losing session state.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateRunning:
		e.disarmTimer()
		e.state = StatePaused
		return nil
	case StatePaused:
		return nil
	}
	return errors.New(errors.ErrNoSession, "no rotation session to pause")
}

// Resume rearms the timer of a paused session.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StatePaused:
		if e.remaining <= 0 {
			e.remaining = e.interval
		}
		e.state = StateRunning
		e.armTimer()
		return nil
	case StateRunning:
		return nil
	}
	return errors.New(errors.ErrNoSession, "no rotation session to resume")
}

// Next advances the carousel by hand: forward through history while behind
// the newest entry, fresh generation until every source item has appeared,
// then wraparound replay.
func (e *Engine) Next() (HistoryEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return HistoryEntry{}, errors.New(errors.ErrNoSession, "no rotation session")
	}

	entry, err := e.advance()
	if err != nil {
		return HistoryEntry{}, err
	}
	e.render(entry)
	return entry, nil
}

// Prev steps backward through history, wrapping from the first entry to the
// last. Replay never regenerates randomized fields.
func (e *Engine) Prev() (HistoryEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || len(s.History) == 0 {
		return HistoryEntry{}, errors.New(errors.ErrNoSession, "no rotation session")
	}

	s.HistoryCursor--
	if s.HistoryCursor < 0 {
		s.HistoryCursor = len(s.History) - 1
	}
	entry := *s.current()
	e.render(entry)
	return entry, nil
}

// SetInterval updates the rotation period. Non-positive or non-finite values
// are ignored with no state change and no timer restart.
func (e *Engine) SetInterval(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		logging.Debug("ignoring invalid rotation interval", map[string]interface{}{"seconds": seconds})
		return
	}

	e.interval = time.Duration(seconds * float64(time.Second))
	if e.state == StateRunning {
		e.remaining = e.interval
		e.armTimer()
	}
}

// SetComposite selects the double-scan strategy. Selection is mutually
// exclusive: the new mode replaces the previous one. The mode is consulted at
// generation time only.
func (e *Engine) SetComposite(mode CompositeMode) error {
	if !validCompositeMode(mode) {
		return errors.New(errors.ErrInvalid, "unknown double-scan mode: "+string(mode))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.composite = mode
	return nil
}

// Composite returns the active double-scan strategy.
func (e *Engine) Composite() CompositeMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.composite
}

// ShowDemo encodes and displays the next demo GTIN as a DataMatrix code.
// Available in any state; demo codes never join session history.
func (e *Engine) ShowDemo() (HistoryEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.demo == nil {
		return HistoryEntry{}, errors.New(errors.ErrNoSession, "no demo source configured")
	}

	dm, err := encode.DataMatrix(e.demo.NextDemoValue(), "")
	if err != nil {
		return HistoryEntry{}, err
	}

	primary, secondary := e.applyComposite(Code{Payload: dm.Payload, Format: models.FormatDataMatrix}, nil)
	entry := HistoryEntry{
		SourceIndex: -1,
		Primary:     primary,
		Secondary:   secondary,
		Kind:        string(models.KindDataMatrix),
	}
	e.reportActivity(entry)
	e.render(entry)
	return entry, nil
}

// Encode produces a displayable code for an item outside any session, using
// the same proposal and encoding path the carousel uses. Handy for payload
// previews when an item is created.
func (e *Engine) Encode(item models.Item) (Code, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.encodeItem(item)
}

// Status is a point-in-time snapshot for the control UI.
type Status struct {
	State            State         `json:"state"`
	ItemCount        int           `json:"item_count"`
	Skipped          int           `json:"skipped"`
	HistoryLength    int           `json:"history_length"`
	HistoryCursor    int           `json:"history_cursor"`
	IntervalSeconds  float64       `json:"interval_seconds"`
	RemainingSeconds float64       `json:"remaining_seconds"`
	Composite        CompositeMode `json:"composite"`
	Current          *HistoryEntry `json:"current,omitempty"`
}

// Status reports the engine state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		State:            e.state,
		IntervalSeconds:  e.interval.Seconds(),
		RemainingSeconds: e.remaining.Seconds(),
		Composite:        e.composite,
	}
	if s := e.session; s != nil {
		st.ItemCount = len(s.Items)
		st.Skipped = s.Skipped
		st.HistoryLength = len(s.History)
		st.HistoryCursor = s.HistoryCursor
		if cur := s.current(); cur != nil {
			entry := *cur
			st.Current = &entry
		}
	}
	return st
}

// =====================================================
// Timer
// =====================================================

// armTimer replaces any live timer with a fresh one. Caller holds the mutex.
func (e *Engine) armTimer() {
	e.disarmTimer()
	e.timerGen++
	stopCh := make(chan struct{})
	e.stopCh = stopCh
	go e.runTimer(e.timerGen, stopCh)
}

// disarmTimer guarantees the previous timer goroutine never ticks again.
// Caller holds the mutex.
func (e *Engine) disarmTimer() {
	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}
}

func (e *Engine) runTimer(gen int, stopCh <-chan struct{}) {
	ticker := time.NewTicker(e.quantum)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !e.step(gen) {
				return
			}
		}
	}
}

// step consumes one timer quantum: it counts the remaining time down and,
// once at most one quantum is left, advances the carousel and rewinds the
// countdown. Returns false when this timer generation is stale.
func (e *Engine) step(gen int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.timerGen || e.state != StateRunning {
		return false
	}

	e.remaining -= e.quantum
	if e.remaining <= e.quantum {
		entry, err := e.advance()
		if err != nil {
			logging.Warn("rotation advance failed", map[string]interface{}{"error": err.Error()})
		} else {
			e.render(entry)
		}
		e.remaining = e.interval
	}
	return true
}

// =====================================================
// Generation
// =====================================================

// advance implements the next-payload rule. Caller holds the mutex.
func (e *Engine) advance() (HistoryEntry, error) {
	s := e.session

	// Behind the newest entry: replay forward.
	if s.HistoryCursor < len(s.History)-1 {
		s.HistoryCursor++
		return *s.current(), nil
	}

	// At the newest entry with unvisited source items: generate.
	if !s.exhausted() {
		return e.generate(s)
	}

	// Fully exhausted: wrap to the first entry.
	if len(s.History) == 0 {
		return HistoryEntry{}, errors.New(errors.ErrEncodingSkipped, "no generated codes in session")
	}
	s.HistoryCursor = 0
	return *s.current(), nil
}

// generate encodes the next source item, skipping and counting items that
// fail so one bad entry does not abort the batch. Caller holds the mutex.
func (e *Engine) generate(s *Session) (HistoryEntry, error) {
	for !s.exhausted() {
		idx := s.Cursor
		item := s.Items[idx]
		s.Cursor = (s.Cursor + 1) % len(s.Items)
		s.Attempted++

		code, err := e.encodeItem(item)
		if err != nil {
			s.Skipped++
			logging.Warn("skipping unencodable item", map[string]interface{}{
				"item_id": item.ID.String(),
				"error":   err.Error(),
			})
			continue
		}

		var next *models.Item
		if e.composite == CompositeConsecutiveDM {
			next = &s.Items[(idx+1)%len(s.Items)]
		}
		primary, secondary := e.applyComposite(code, next)

		entry := HistoryEntry{
			SourceIndex: idx,
			Primary:     primary,
			Secondary:   secondary,
			Kind:        string(item.Kind),
		}
		s.History = append(s.History, entry)
		s.HistoryCursor = len(s.History) - 1
		e.reportActivity(entry)
		return entry, nil
	}

	return HistoryEntry{}, errors.New(errors.ErrEncodingSkipped, "every item in the batch failed to encode")
}

// encodeItem runs the proposal step for missing randomized magnitudes, then
// the pure encoder for the item's kind.
func (e *Engine) encodeItem(item models.Item) (Code, error) {
	switch item.Kind {
	case models.KindDataMatrix:
		gtin := strings.TrimSpace(item.SourceValue)
		if gtin == "" && e.demo != nil {
			gtin = e.demo.NextDemoValue()
		}
		dm, err := encode.DataMatrix(gtin, item.TemplateID)
		if err != nil {
			return Code{}, err
		}
		return Code{Payload: dm.Payload, Format: models.FormatDataMatrix}, nil

	case models.KindWeight:
		grams := item.WeightGrams
		if grams <= 0 {
			grams = proposeWeightGrams(e.rng)
		}
		discount := item.Discount
		if discount == DiscountRandom {
			discount = proposeDiscount(e.rng)
		}
		wc, err := encode.WeightBarcode(item.Prefix, item.SourceValue, grams, discount)
		if err != nil {
			return Code{}, err
		}
		return Code{Payload: wc.Payload, Format: wc.Format}, nil

	case models.KindGS1:
		params := encode.GS1Params{
			GoodsID:     item.SourceValue,
			Type:        item.ProductType,
			Quantity:    item.Quantity,
			WeightGrams: item.WeightGrams,
			Discount:    item.Discount,
			UniqueID:    item.UniqueID,
			DecimalPos:  item.DecimalPos,
		}
		if params.Type == models.ProductPiece && params.Quantity <= 0 {
			params.Quantity = proposeQuantity(e.rng)
		}
		if params.Type == models.ProductWeight && params.WeightGrams <= 0 {
			params.WeightGrams = proposeWeightGrams(e.rng)
		}
		if params.Discount == DiscountRandom {
			params.Discount = proposeDiscount(e.rng)
		}
		payload, err := encode.GS1(params)
		if err != nil {
			return Code{}, err
		}
		return Code{Payload: payload, Format: models.FormatDataMatrix}, nil

	case models.KindSimple:
		format := models.FormatCode128
		trimmed := strings.TrimSpace(item.SourceValue)
		if n := len(trimmed); (n == 12 || n == 13) && isNumeric(trimmed) {
			format = models.FormatEAN13
		}
		sc := encode.Simple(item.SourceValue, format)
		return Code{Payload: sc.Payload, Format: sc.Format}, nil
	}

	return Code{}, errors.New(errors.ErrValidation, "unknown item kind: "+string(item.Kind))
}

// reportActivity appends a newly generated payload to the activity log.
// Caller holds the mutex.
func (e *Engine) reportActivity(entry HistoryEntry) {
	if e.activity == nil {
		return
	}
	if err := e.activity.AddActivity(entry.Kind, entry.Primary.Payload); err != nil {
		logging.Error("activity log append failed", err)
	}
}

// render pushes the entry to the display sink. Failures are logged and never
// corrupt the session. Caller holds the mutex.
func (e *Engine) render(entry HistoryEntry) {
	if e.sink == nil {
		return
	}
	if err := e.sink.Render(entry.Primary, entry.Secondary); err != nil {
		logging.Error("render failed", err, map[string]interface{}{"payload": entry.Primary.Payload})
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
