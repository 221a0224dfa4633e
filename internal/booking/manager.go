// Package booking implements the seat booking state manager: which seats of
// one movie session are selected or sold, the chosen movie, and the derived
// totals.  The manager owns its profile's store and is driven by four
// commands (ToggleSeat, ChangeMovie, ConfirmBooking, Reset) issued by a thin
// transport adapter.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/store"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Publisher receives confirmed bookings.  Delivery is best-effort: errors
// are logged and never undo a booking.
type Publisher interface {
	BookingConfirmed(ctx context.Context, profileID string, b model.Booking) error
}

// Options configures a Manager.
type Options struct {
	Seats     int              // number of seats in the grid; must be positive
	Catalog   Catalog          // movie selector content; must not be empty
	ProfileID string           // owner of the store, used in logs and events
	Publisher Publisher        // optional
	Now       func() time.Time // optional clock, defaults to time.Now
}

// Snapshot is the hydrated view of a manager returned by every operation.
type Snapshot struct {
	Seats    []model.GridSeat    `json:"seats"`
	Selected []int               `json:"selected"`
	Sold     []int               `json:"sold"`
	Count    int                 `json:"count"`
	Total    int64               `json:"total"`
	Movie    model.SessionChoice `json:"movie"`
}

// Manager is the state manager of one profile.  All operations are
// serialized: each runs to completion before the next starts.  Every
// mutation is persisted with a single atomic store write before it becomes
// visible in memory, so a failed write leaves the manager unchanged.
type Manager struct {
	mu        sync.Mutex
	store     store.Store
	catalog   Catalog
	profileID string
	publisher Publisher
	now       func() time.Time

	states []model.SeatState
	movie  model.SessionChoice
}

// NewManager returns a manager with every seat available and the catalog
// default selected.  Call Initialize to restore persisted state.
func NewManager(s store.Store, opts Options) (*Manager, error) {
	if s == nil {
		return nil, errors.New("booking: nil store")
	}
	if opts.Seats <= 0 {
		return nil, fmt.Errorf("booking: seat count must be positive, got %d", opts.Seats)
	}
	if len(opts.Catalog) == 0 {
		return nil, errors.New("booking: empty movie catalog")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:     s,
		catalog:   opts.Catalog,
		profileID: opts.ProfileID,
		publisher: opts.Publisher,
		now:       now,
		states:    availableSeats(opts.Seats),
		movie:     opts.Catalog.Default(),
	}, nil
}

func availableSeats(n int) []model.SeatState {
	states := make([]model.SeatState, n)
	for i := range states {
		states[i] = model.SeatAvailable
	}
	return states
}

// Initialize restores seat states and the movie choice from the store.
// Selected is applied first and sold second, so an ordinal persisted in
// both sets resolves to sold.  Ordinals outside the grid and malformed
// values are ignored.  The unit price is taken from the catalog entry of
// the restored index; the persisted price is never re-read.
func (m *Manager) Initialize(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	selected, err := m.readOrdinals(ctx, store.KeySelectedSeats)
	if err != nil {
		return m.snapshotLocked(), err
	}
	sold, err := m.readOrdinals(ctx, store.KeySoldSeats)
	if err != nil {
		return m.snapshotLocked(), err
	}

	states := availableSeats(len(m.states))
	for _, o := range selected {
		states[o] = model.SeatSelected
	}
	for _, o := range sold {
		if states[o] == model.SeatSelected {
			log.Printf("booking: profile %s: seat %d persisted as both selected and sold; keeping sold", m.profileID, o)
		}
		states[o] = model.SeatSold
	}

	movie := m.catalog.Default()
	raw, err := m.store.Get(ctx, store.KeySelectedMovieIndex)
	switch {
	case err == nil:
		idx, convErr := strconv.Atoi(strings.TrimSpace(raw))
		if ch, ok := m.catalog.Choice(idx); convErr == nil && ok {
			movie = ch
		} else {
			log.Printf("booking: profile %s: ignoring persisted movie index %q", m.profileID, raw)
		}
	case errors.Is(err, store.ErrNotFound):
	default:
		return m.snapshotLocked(), err
	}

	m.states = states
	m.movie = movie
	return m.snapshotLocked(), nil
}

// readOrdinals loads an ordinal set, dropping duplicates and ordinals that
// do not exist in the grid.
func (m *Manager) readOrdinals(ctx context.Context, key string) ([]int, error) {
	raw, err := m.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ords, err := decodeOrdinals(raw)
	if err != nil {
		log.Printf("booking: profile %s: malformed %s value %q: %v", m.profileID, key, raw, err)
		return nil, nil
	}
	seen := make(map[int]struct{}, len(ords))
	out := make([]int, 0, len(ords))
	for _, o := range ords {
		if o < 0 || o >= len(m.states) {
			log.Printf("booking: profile %s: ignoring %s ordinal %d outside grid", m.profileID, key, o)
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out, nil
}

// ToggleSeat flips a seat between available and selected.  Toggling a sold
// seat is a silent no-op.
func (m *Manager) ToggleSeat(ctx context.Context, ordinal int) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ordinal < 0 || ordinal >= len(m.states) {
		return m.snapshotLocked(), ErrSeatNotFound
	}
	if m.states[ordinal] == model.SeatSold {
		return m.snapshotLocked(), nil
	}

	next := append([]model.SeatState(nil), m.states...)
	if next[ordinal] == model.SeatSelected {
		next[ordinal] = model.SeatAvailable
	} else {
		next[ordinal] = model.SeatSelected
	}

	if err := m.store.Apply(ctx, store.Batch{Set: recomputeWrites(next, m.movie)}); err != nil {
		return m.snapshotLocked(), err
	}
	m.states = next
	return m.snapshotLocked(), nil
}

// ChangeMovie replaces the session choice.  The selection is kept, so the
// count is unchanged and only the total moves.
func (m *Manager) ChangeMovie(ctx context.Context, choice model.SessionChoice) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if choice.Index < 0 || choice.UnitPrice < 0 {
		return m.snapshotLocked(), &ValidationError{Message: MsgInvalidMovie, Fields: []string{"index"}}
	}
	if err := m.store.Apply(ctx, store.Batch{Set: recomputeWrites(m.states, choice)}); err != nil {
		return m.snapshotLocked(), err
	}
	m.movie = choice
	return m.snapshotLocked(), nil
}

// ConfirmBooking moves every selected seat to sold.  It requires a
// non-empty selection and the fields of the chosen payment method; when a
// precondition fails it returns a *ValidationError and changes nothing.
func (m *Manager) ConfirmBooking(ctx context.Context, p model.PaymentDetails) (model.Booking, Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	selected := ordinalsIn(m.states, model.SeatSelected)
	if len(selected) == 0 {
		return model.Booking{}, m.snapshotLocked(), &ValidationError{Message: MsgNoSeats}
	}
	p, err := checkPayment(p)
	if err != nil {
		return model.Booking{}, m.snapshotLocked(), err
	}

	next := append([]model.SeatState(nil), m.states...)
	for _, o := range selected {
		next[o] = model.SeatSold
	}

	writes := movieWrites(m.movie)
	writes[store.KeySoldSeats] = encodeOrdinals(ordinalsIn(next, model.SeatSold))
	b := store.Batch{Set: writes, Remove: []string{store.KeySelectedSeats}}
	if err := m.store.Apply(ctx, b); err != nil {
		return model.Booking{}, m.snapshotLocked(), err
	}
	m.states = next

	totals := ComputeTotals(len(selected), m.movie.UnitPrice)
	receipt := model.Booking{
		Seats:       selected,
		Count:       totals.Count,
		UnitPrice:   m.movie.UnitPrice,
		Total:       totals.Total,
		MovieIndex:  m.movie.Index,
		MovieTitle:  m.catalog.Title(m.movie.Index),
		Method:      p.Method,
		ConfirmedAt: m.now().UTC(),
	}
	log.Printf("booking: profile %s: booked seats %v total=%d via %s", m.profileID, selected, receipt.Total, p.Method)

	if m.publisher != nil {
		if err := m.publisher.BookingConfirmed(ctx, m.profileID, receipt); err != nil {
			log.Printf("booking: profile %s: publish booking.confirmed failed: %v", m.profileID, err)
		}
	}
	return receipt, m.snapshotLocked(), nil
}

// checkPayment normalizes the method (upi when empty) and checks that the
// chosen method's fields are present.
func checkPayment(p model.PaymentDetails) (model.PaymentDetails, error) {
	p.Method = strings.ToLower(strings.TrimSpace(p.Method))
	if p.Method == "" {
		p.Method = model.PaymentUPI
	}
	p.UPIID = strings.TrimSpace(p.UPIID)
	p.CardNumber = strings.TrimSpace(p.CardNumber)
	p.CardExpiry = strings.TrimSpace(p.CardExpiry)
	p.CardCVV = strings.TrimSpace(p.CardCVV)

	err := validate.Struct(p)
	if err == nil {
		return p, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return p, err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	msg := MsgMissingCard
	switch {
	case verrs[0].Field() == "method":
		msg = MsgBadMethod
	case p.Method == model.PaymentUPI:
		msg = MsgMissingUPI
	}
	return p, &ValidationError{Message: msg, Fields: fields}
}

// Reset returns every seat to available and clears both persisted sets.
func (m *Manager) Reset(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := store.Batch{
		Set:    movieWrites(m.movie),
		Remove: []string{store.KeySoldSeats, store.KeySelectedSeats},
	}
	if err := m.store.Apply(ctx, b); err != nil {
		return m.snapshotLocked(), err
	}
	m.states = availableSeats(len(m.states))
	return m.snapshotLocked(), nil
}

// Snapshot returns the current view without touching the store.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	seats := make([]model.GridSeat, len(m.states))
	for i, st := range m.states {
		seats[i] = model.GridSeat{Ordinal: i, State: st}
	}
	selected := ordinalsIn(m.states, model.SeatSelected)
	totals := ComputeTotals(len(selected), m.movie.UnitPrice)
	return Snapshot{
		Seats:    seats,
		Selected: selected,
		Sold:     ordinalsIn(m.states, model.SeatSold),
		Count:    totals.Count,
		Total:    totals.Total,
		Movie:    m.movie,
	}
}

// ordinalsIn returns the ascending ordinals whose state is st.  The result
// is never nil.
func ordinalsIn(states []model.SeatState, st model.SeatState) []int {
	out := []int{}
	for i, s := range states {
		if s == st {
			out = append(out, i)
		}
	}
	return out
}

// recomputeWrites is what every recount persists: the selection and the
// movie keys.
func recomputeWrites(states []model.SeatState, movie model.SessionChoice) map[string]string {
	w := movieWrites(movie)
	w[store.KeySelectedSeats] = encodeOrdinals(ordinalsIn(states, model.SeatSelected))
	return w
}

func movieWrites(movie model.SessionChoice) map[string]string {
	return map[string]string{
		store.KeySelectedMovieIndex: strconv.Itoa(movie.Index),
		store.KeySelectedMoviePrice: formatInt(movie.UnitPrice),
	}
}
