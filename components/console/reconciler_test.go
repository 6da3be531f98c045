package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCRUD[E any] struct {
	calls   int
	deleted []int
	err     error
	confirm func(E) E
}

func (s *stubCRUD[E]) Create(ctx context.Context, draft E) (E, error) {
	s.calls++
	if s.err != nil {
		var zero E
		return zero, s.err
	}
	if s.confirm != nil {
		return s.confirm(draft), nil
	}
	return draft, nil
}

func (s *stubCRUD[E]) Update(ctx context.Context, id int, draft E) (E, error) {
	s.calls++
	if s.err != nil {
		var zero E
		return zero, s.err
	}
	return draft, nil
}

func (s *stubCRUD[E]) Delete(ctx context.Context, id int) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func newAPIReconciler(t *testing.T, client CRUDClient[API], opts func(*ReconcilerOptions[API])) (*Reconciler[API], *Screen[API]) {
	t.Helper()
	screen := newTestScreen(t, staticFetcher(apiFixture(), 3))
	require.NoError(t, screen.Load(context.Background()))
	options := ReconcilerOptions[API]{Screen: screen, Client: client, Validate: ValidateAPI}
	if opts != nil {
		opts(&options)
	}
	rec, err := NewReconciler(options)
	require.NoError(t, err)
	return rec, screen
}

func TestReconcilerCreateBlocksOnValidation(t *testing.T) {
	client := &stubCRUD[API]{}
	rec, screen := newAPIReconciler(t, client, nil)

	_, err := rec.Create(context.Background(), API{Name: "bad", URL: "ftp://x", Percentage: "5", Key: "k"})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "url")
	assert.Zero(t, client.calls, "validation failure must not reach the network")
	assert.Len(t, screen.Items(), 3)
}

func TestReconcilerCreateAppendsConfirmedRow(t *testing.T) {
	client := &stubCRUD[API]{confirm: func(a API) API { a.ID = 42; return a }}
	rec, screen := newAPIReconciler(t, client, nil)

	created, err := rec.Create(context.Background(), validAPIDraft())

	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Len(t, screen.Items(), 4)
	assert.Equal(t, 4, screen.Count())
}

func TestReconcilerCreateStoresServerError(t *testing.T) {
	client := &stubCRUD[API]{err: errors.New("name already exists")}
	rec, screen := newAPIReconciler(t, client, nil)

	_, err := rec.Create(context.Background(), validAPIDraft())

	require.Error(t, err)
	assert.Equal(t, "name already exists", screen.Err())
	assert.Len(t, screen.Items(), 3, "failed create must not patch list state")
}

func TestReconcilerUpdateReplacesRowInPlace(t *testing.T) {
	client := &stubCRUD[API]{}
	rec, screen := newAPIReconciler(t, client, nil)

	draft := validAPIDraft()
	draft.ID = 2
	draft.Name = "Renamed"
	_, err := rec.Update(context.Background(), 2, draft)

	require.NoError(t, err)
	for _, item := range screen.Items() {
		if item.ID == 2 {
			assert.Equal(t, "Renamed", item.Name)
		}
	}
	assert.Len(t, screen.Items(), 3)
}

func TestReconcilerDeleteRemovesRow(t *testing.T) {
	client := &stubCRUD[API]{}
	rec, screen := newAPIReconciler(t, client, nil)

	require.NoError(t, rec.Delete(context.Background(), 2))
	assert.Equal(t, []int{2}, client.deleted)
	assert.Len(t, screen.Items(), 2)
	assert.Equal(t, 2, screen.Count())
}

func TestReconcilerEmitsListEvents(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	client := &stubCRUD[API]{}
	rec, _ := newAPIReconciler(t, client, func(opts *ReconcilerOptions[API]) {
		opts.Broadcast = hook
	})

	require.NoError(t, rec.Delete(context.Background(), 1))

	event := <-events
	assert.Equal(t, KindAPIs, event.Kind)
	assert.Equal(t, "delete", event.Reason)
	assert.Equal(t, []int{1}, event.IDs)
	assert.NotEmpty(t, event.EventID)
}

func TestExchangeDeleteGuardVetoesWithoutNetworkCall(t *testing.T) {
	apisScreen := newTestScreen(t, staticFetcher([]API{{ID: 1, Name: "P", ExchangeID: 7}}, 1))
	require.NoError(t, apisScreen.Load(context.Background()))

	exchangeScreen, err := NewScreen(ExchangeScreenConfig(),
		func(context.Context, int, int) (Page[Exchange], error) {
			return Page[Exchange]{Count: 1, Results: []Exchange{{ID: 7, Name: "USD"}}}, nil
		})
	require.NoError(t, err)
	require.NoError(t, exchangeScreen.Load(context.Background()))

	client := &stubCRUD[Exchange]{}
	rec, err := NewReconciler(ReconcilerOptions[Exchange]{
		Screen:   exchangeScreen,
		Client:   client,
		Validate: ValidateExchange,
		Guard:    ExchangeDeleteGuard(apisScreen.Items),
	})
	require.NoError(t, err)

	err = rec.Delete(context.Background(), 7)
	require.ErrorIs(t, err, ErrExchangeInUse)
	assert.Zero(t, client.calls, "guard veto must not reach the network")
	assert.Len(t, exchangeScreen.Items(), 1)

	// An exchange no loaded API references deletes normally.
	require.NoError(t, rec.Delete(context.Background(), 8))
	assert.Equal(t, 1, client.calls)
}
