package queue

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
	"backend-turnero/internal/store"
)

// Board - Store -> Model -> watchers. The subscription callback is the only
// writer of the model; operations decide on the last received snapshot and
// submit their deltas to the store, then wait for the notification like
// every other client.
type Board struct {
	vessels store.VesselStore
	history store.HistoryStore
	now     func() time.Time

	mu           sync.RWMutex
	model        *Model
	lastSnapshot time.Time
	violations   map[apperror.ViolationKind]int
	storeErrors  int
	watchers     map[int]chan []models.Vessel
	nextWatcher  int
	unsubscribe  func()
}

// NewBoard - history may be nil, in which case nothing is recorded.
func NewBoard(vessels store.VesselStore, history store.HistoryStore) *Board {
	return &Board{
		vessels:    vessels,
		history:    history,
		now:        time.Now,
		model:      Load(nil),
		violations: make(map[apperror.ViolationKind]int),
		watchers:   make(map[int]chan []models.Vessel),
	}
}

/*
|--------------------------------------------------------------------------
| LIFECYCLE
|--------------------------------------------------------------------------
*/

// Start - Load the current list and follow store notifications until ctx
// ends or Stop is called.
func (b *Board) Start(ctx context.Context) error {
	vessels, err := b.vessels.FetchAllOrdered(ctx)
	if err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	b.apply(vessels)

	unsubscribe, err := b.vessels.Subscribe(ctx, b.apply, b.onStoreError)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()

	log.Printf("[board] started with %d vessels", len(vessels))
	return nil
}

func (b *Board) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	for id, ch := range b.watchers {
		close(ch)
		delete(b.watchers, id)
	}
}

func (b *Board) apply(vessels []models.Vessel) {
	m := Load(vessels)
	for _, v := range m.Violations() {
		log.Printf("[board] %v", v)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.model = m
	b.lastSnapshot = b.now()
	for _, v := range m.Violations() {
		b.violations[v.Kind]++
	}

	for _, ch := range b.watchers {
		push(ch, m.Snapshot())
	}
}

func (b *Board) onStoreError(err error) {
	log.Printf("[board] subscription error: %v", err)

	b.mu.Lock()
	b.storeErrors++
	b.mu.Unlock()
}

// push keeps only the latest snapshot in a capacity-1 channel.
func push(ch chan []models.Vessel, snap []models.Vessel) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// Watch - Receive every new snapshot, starting with the current one. Slow
// readers only ever see the latest.
func (b *Board) Watch() (<-chan []models.Vessel, func()) {
	ch := make(chan []models.Vessel, 1)

	b.mu.Lock()
	id := b.nextWatcher
	b.nextWatcher++
	b.watchers[id] = ch
	push(ch, b.model.Snapshot())
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.watchers[id]; ok {
			delete(b.watchers, id)
			close(ch)
		}
	}
	return ch, cancel
}

// EnsureRoster - Seed the roster when the store holds no vessels. Returns the
// number of vessels inserted.
func (b *Board) EnsureRoster(ctx context.Context, names []string) (int, error) {
	existing, err := b.vessels.FetchAllOrdered(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	vessels := make([]models.Vessel, len(names))
	for i, name := range names {
		vessels[i] = models.Vessel{
			ID:          uuid.NewString(),
			DisplayName: name,
			Position:    i + 1,
			Status:      models.StatusWaiting,
		}
	}
	if err := b.vessels.InsertMany(ctx, vessels); err != nil {
		return 0, apperror.WriteFailed("seed", err)
	}

	log.Printf("[board] roster seeded with %d vessels", len(vessels))
	return len(vessels), nil
}

/*
|--------------------------------------------------------------------------
| QUERIES
|--------------------------------------------------------------------------
*/

func (b *Board) current() *Model {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

func (b *Board) Snapshot() []models.Vessel {
	return b.current().Snapshot()
}

func (b *Board) Vessel(id string) (models.Vessel, bool) {
	return b.current().Vessel(id)
}

func (b *Board) Boarding() (models.Vessel, bool) {
	return b.current().BoardingVessel()
}

func (b *Board) Next() (models.Vessel, bool) {
	return b.current().NextWaiting()
}

type Diagnostics struct {
	Vessels      int            `json:"vessels"`
	Boarding     string         `json:"boarding,omitempty"`
	Next         string         `json:"next,omitempty"`
	LastSnapshot time.Time      `json:"last_snapshot"`
	Violations   map[string]int `json:"violations"`
	Current      []string       `json:"current_violations"`
	StoreErrors  int            `json:"store_errors"`
	Watchers     int            `json:"watchers"`
}

func (b *Board) Diagnostics() Diagnostics {
	b.mu.RLock()
	defer b.mu.RUnlock()

	d := Diagnostics{
		Vessels:      b.model.Len(),
		LastSnapshot: b.lastSnapshot,
		Violations:   make(map[string]int, len(b.violations)),
		Current:      []string{},
		StoreErrors:  b.storeErrors,
		Watchers:     len(b.watchers),
	}
	if v, ok := b.model.BoardingVessel(); ok {
		d.Boarding = v.DisplayName
	}
	if v, ok := b.model.NextWaiting(); ok {
		d.Next = v.DisplayName
	}
	for kind, n := range b.violations {
		d.Violations[string(kind)] = n
	}
	for _, v := range b.model.Violations() {
		d.Current = append(d.Current, v.Error())
	}
	return d
}

/*
|--------------------------------------------------------------------------
| OPERATIONS
|--------------------------------------------------------------------------
*/

func (b *Board) SwapAdjacent(ctx context.Context, index int, dir Direction) Result {
	snap := b.Snapshot()
	updates, err := SwapAdjacent(snap, index, dir)
	if err != nil {
		return rejected(err)
	}

	moved := snap[index]
	if len(updates) == 0 {
		return Result{Kind: Noop, Message: MsgSwapBoundary, Vessel: &moved}
	}
	if err := b.vessels.BatchUpdate(ctx, updates); err != nil {
		return writeFailed("swap", err)
	}

	b.Record(ctx, models.HistoryReorder, map[string]any{
		"embarcacion":       moved.DisplayName,
		"direccion":         string(dir),
		"posicion_anterior": moved.Position,
		"posicion_nueva":    *updates[0].Fields.Position,
	})
	return Result{Kind: Applied, Message: MsgSwapApplied, Updated: len(updates), Vessel: &moved}
}

func (b *Board) Reposition(ctx context.Context, draggedID, targetID string) Result {
	snap := b.Snapshot()
	updates, err := Reposition(snap, draggedID, targetID)
	if err != nil {
		return rejected(err)
	}

	dragged := snap[indexOf(snap, draggedID)]
	if len(updates) == 0 {
		return Result{Kind: Noop, Message: MsgRepositionSame, Vessel: &dragged}
	}
	if err := b.vessels.BatchUpdate(ctx, updates); err != nil {
		return writeFailed("reposition", err)
	}

	newPosition := 0
	for _, u := range updates {
		if u.ID == draggedID {
			newPosition = *u.Fields.Position
		}
	}
	b.Record(ctx, models.HistoryReorderDrag, map[string]any{
		"embarcacion":       dragged.DisplayName,
		"posicion_anterior": dragged.Position,
		"posicion_nueva":    newPosition,
	})
	return Result{Kind: Applied, Message: MsgRepositionApplied, Updated: len(updates), Vessel: &dragged}
}

// AdvanceTurn - Promote the next WAITING vessel to BOARDING and demote the
// rest in one batch.
func (b *Board) AdvanceTurn(ctx context.Context) Result {
	snap := b.Snapshot()
	if len(snap) == 0 {
		return Result{Kind: Noop, Message: MsgBoardEmpty}
	}

	var previous string
	if v, ok := Load(snap).BoardingVessel(); ok {
		previous = v.DisplayName
	}

	updates, candidate := Advance(snap)
	if err := b.vessels.BatchUpdate(ctx, updates); err != nil {
		return writeFailed("advance", err)
	}

	details := map[string]any{"anterior": previous}
	msg := MsgAdvanceNoCandidate
	if candidate != nil {
		details["embarcacion"] = candidate.DisplayName
		msg = MsgAdvanceApplied
	}
	b.Record(ctx, models.HistoryNextTurn, details)

	return Result{Kind: Applied, Message: msg, Updated: len(updates), Vessel: candidate}
}

// ResetAll - Clear boarding state for everyone. Requires confirmed=true.
func (b *Board) ResetAll(ctx context.Context, confirmed bool) Result {
	if !confirmed {
		return Result{
			Kind:    Rejected,
			Message: MsgResetUnconfirmed,
			Err:     apperror.NewValidation("confirm", "required", "se requiere confirmación"),
		}
	}

	snap := b.Snapshot()
	if len(snap) == 0 {
		return Result{Kind: Noop, Message: MsgBoardEmpty}
	}
	updates := ResetAll(snap)
	if err := b.vessels.BatchUpdate(ctx, updates); err != nil {
		return writeFailed("reset", err)
	}

	b.Record(ctx, models.HistoryReset, map[string]any{"embarcaciones": len(updates)})
	return Result{Kind: Applied, Message: MsgResetApplied, Updated: len(updates)}
}

func (b *Board) SetStatus(ctx context.Context, id string, status models.VesselStatus) Result {
	snap := b.Snapshot()
	updates, err := SetStatus(snap, id, status)
	if err != nil {
		return rejected(err)
	}

	v := snap[indexOf(snap, id)]
	if len(updates) == 0 {
		return Result{Kind: Noop, Message: MsgStatusUnchanged, Vessel: &v}
	}

	if len(updates) == 1 {
		err = b.vessels.UpdateOne(ctx, id, updates[0].Fields)
	} else {
		err = b.vessels.BatchUpdate(ctx, updates)
	}
	if err != nil {
		return writeFailed("status", err)
	}

	b.Record(ctx, models.HistoryStatus, map[string]any{
		"embarcacion":     v.DisplayName,
		"estado_anterior": string(v.Status),
		"estado_nuevo":    string(status),
	})
	return Result{Kind: Applied, Message: MsgStatusApplied, Updated: len(updates), Vessel: &v}
}

// ReorganizeAfterDeparture - Queue step of the departure workflow. Result
// Vessel is the promoted vessel, if any.
func (b *Board) ReorganizeAfterDeparture(ctx context.Context, id string, prior models.VesselStatus) Result {
	updates, promoted, err := AfterDeparture(b.Snapshot(), id, prior)
	if err != nil {
		return rejected(err)
	}
	if err := b.vessels.BatchUpdate(ctx, updates); err != nil {
		return writeFailed("reorganize", err)
	}
	return Result{Kind: Applied, Message: MsgReorganized, Updated: len(updates), Vessel: promoted}
}

// Record - Append a history entry. Failures are logged and never surface to
// the operation that triggered them.
func (b *Board) Record(ctx context.Context, kind models.HistoryKind, details map[string]any) {
	if b.history == nil {
		return
	}

	entry := models.HistoryEntry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Details:   details,
		Actor:     ActorFrom(ctx),
		CreatedAt: b.now(),
	}
	if err := b.history.AddHistory(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("[board] history %s not recorded: %v", kind, err)
	}
}
