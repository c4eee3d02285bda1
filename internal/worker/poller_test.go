package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradebot/internal/config"
	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/service/engine"
	"tradebot/internal/worker"
)

type fakePlatform struct {
	offers   []entity.Offer
	accepted []string
	declined []string
}

func (p *fakePlatform) GetOffers(_ context.Context, _ time.Time) ([]entity.Offer, error) {
	return p.offers, nil
}

func (p *fakePlatform) Accept(_ context.Context, offerID string) error {
	p.accepted = append(p.accepted, offerID)

	return nil
}

func (p *fakePlatform) Decline(_ context.Context, offerID string) error {
	p.declined = append(p.declined, offerID)

	return nil
}

type fakeStore struct {
	data map[string]*entity.OfferData
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]*entity.OfferData{}}
}

func (s *fakeStore) Load(_ context.Context, offerID string) (*entity.OfferData, error) {
	return s.data[offerID], nil
}

func (s *fakeStore) Save(_ context.Context, offerID string, data *entity.OfferData) error {
	s.data[offerID] = data

	return nil
}

func (s *fakeStore) Delete(_ context.Context, offerID string) error {
	delete(s.data, offerID)

	return nil
}

type fakeEngine struct {
	action entity.Action
	reason string
	calls  int
}

func (e *fakeEngine) Evaluate(_ context.Context, offer *entity.Offer, keyState entity.KeyTradeState) engine.Result {
	e.calls++
	offer.Data.Action = e.action
	offer.Data.Reason = e.reason

	return engine.Result{
		Decision: entity.Decision{Action: e.action, Reason: e.reason},
		KeyState: keyState,
	}
}

type fakeReactor struct {
	stateChanges []entity.OfferState
	skips        int
}

func (r *fakeReactor) OnStateChanged(_ context.Context, offer *entity.Offer, _ entity.OfferState) {
	r.stateChanges = append(r.stateChanges, offer.State)
	offer.Data.LastState = offer.State
}

func (r *fakeReactor) OnSkip(_ context.Context, _ *entity.Offer, _ entity.Decision, _ entity.ReviewScratch) {
	r.skips++
}

type fakeInventory struct {
	refreshes int
}

func (i *fakeInventory) Refresh(_ context.Context) error {
	i.refreshes++

	return nil
}

type pollerFixture struct {
	platform  *fakePlatform
	store     *fakeStore
	engine    *fakeEngine
	reactor   *fakeReactor
	inventory *fakeInventory
	reviews   *worker.ReviewQueue
	poller    *worker.Poller
}

func newPollerFixture(action entity.Action, reason string) *pollerFixture {
	f := &pollerFixture{
		platform:  &fakePlatform{},
		store:     newFakeStore(),
		engine:    &fakeEngine{action: action, reason: reason},
		reactor:   &fakeReactor{},
		inventory: &fakeInventory{},
		reviews:   worker.NewReviewQueue(),
	}

	f.poller = worker.NewPoller(
		config.Engine{Admins: []string{"76561198999999999"}},
		time.Second,
		f.platform,
		f.store,
		f.engine,
		f.reactor,
		f.inventory,
		f.reviews,
	)

	return f
}

func activeOffer(id string) entity.Offer {
	return entity.Offer{
		ID:        id,
		PartnerID: "76561198000000001",
		State:     entity.StateActive,
		ItemsToReceive: []entity.Item{
			{AssetID: "a1", SKU: "5000;6", Name: "Scrap Metal"},
		},
	}
}

func TestPoller_AcceptsNewOffer(t *testing.T) {
	rq := require.New(t)

	f := newPollerFixture(entity.ActionAccept, engine.ReasonValid)
	f.platform.offers = []entity.Offer{activeOffer("100")}

	f.poller.Poll(context.Background())

	rq.Equal([]string{"100"}, f.platform.accepted)
	rq.Equal(1, f.engine.calls)

	saved := f.store.data["100"]
	rq.NotNil(saved)
	rq.True(saved.HandledByUs)
	rq.True(saved.NotifyPartner)
	rq.Equal(entity.ActionAccept, saved.Action)
}

func TestPoller_DeclinesOffer(t *testing.T) {
	rq := require.New(t)

	f := newPollerFixture(entity.ActionDecline, engine.ReasonBanned)
	f.platform.offers = []entity.Offer{activeOffer("101")}

	f.poller.Poll(context.Background())

	rq.Equal([]string{"101"}, f.platform.declined)
	rq.Empty(f.platform.accepted)
}

func TestPoller_SkipQueuesReview(t *testing.T) {
	rq := require.New(t)

	f := newPollerFixture(entity.ActionSkip, engine.ReasonReview)
	f.platform.offers = []entity.Offer{activeOffer("102")}

	f.poller.Poll(context.Background())

	rq.Equal(1, f.reactor.skips)
	rq.Equal(1, f.reviews.Len())

	item, ok := f.reviews.Get("102")
	rq.True(ok)
	rq.Equal(entity.ActionSkip, item.Decision.Action)
}

func TestPoller_HandledOfferNotReevaluated(t *testing.T) {
	rq := require.New(t)

	f := newPollerFixture(entity.ActionAccept, engine.ReasonValid)
	f.platform.offers = []entity.Offer{activeOffer("103")}

	f.poller.Poll(context.Background())
	f.poller.Poll(context.Background())

	rq.Equal(1, f.engine.calls)
	rq.Equal([]string{"103"}, f.platform.accepted)
}

func TestPoller_AdminPartnerNotNotified(t *testing.T) {
	rq := require.New(t)

	f := newPollerFixture(entity.ActionAccept, engine.ReasonAdmin)
	offer := activeOffer("104")
	offer.PartnerID = "76561198999999999"
	f.platform.offers = []entity.Offer{offer}

	f.poller.Poll(context.Background())

	rq.False(f.store.data["104"].NotifyPartner)
}

func TestPoller_TerminalStateCleansUp(t *testing.T) {
	rq := require.New(t)

	f := newPollerFixture(entity.ActionAccept, engine.ReasonValid)
	f.platform.offers = []entity.Offer{activeOffer("105")}

	f.poller.Poll(context.Background())
	rq.NotNil(f.store.data["105"])

	accepted := activeOffer("105")
	accepted.State = entity.StateAccepted
	f.platform.offers = []entity.Offer{accepted}

	f.poller.Poll(context.Background())

	rq.Equal([]entity.OfferState{entity.StateAccepted}, f.reactor.stateChanges)
	rq.Equal(1, f.inventory.refreshes)
	rq.Nil(f.store.data["105"])
	rq.Zero(f.reviews.Len())
}

func TestPoller_NonTerminalStateKeptInStore(t *testing.T) {
	rq := require.New(t)

	f := newPollerFixture(entity.ActionAccept, engine.ReasonValid)
	f.platform.offers = []entity.Offer{activeOffer("106")}

	f.poller.Poll(context.Background())

	escrow := activeOffer("106")
	escrow.State = entity.StateInEscrow
	f.platform.offers = []entity.Offer{escrow}

	f.poller.Poll(context.Background())

	rq.Equal([]entity.OfferState{entity.StateInEscrow}, f.reactor.stateChanges)
	rq.NotNil(f.store.data["106"])
	rq.Equal(entity.StateInEscrow, f.store.data["106"].LastState)
}
