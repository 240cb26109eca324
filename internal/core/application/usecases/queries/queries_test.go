package queries_test

import (
	"log/slog"
	"testing"
	"time"

	"atelier/internal/adapters/out/alerts"
	"atelier/internal/adapters/out/memory"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var day0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func at(days int) time.Time { return day0.AddDate(0, 0, days) }

func ptr(t time.Time) *time.Time { return &t }

type QueriesTestSuite struct {
	suite.Suite
	store   *memory.Store
	factory *memory.UnitOfWorkFactory
	entryID kernel.UUID
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

// SetupTest seeds a small workshop: three SKUs (two sharing a name), four
// orders in different statuses, the matching ledger and one production entry.
func (s *QueriesTestSuite) SetupTest() {
	ctx := s.T().Context()
	s.store = memory.NewStore()
	s.factory = memory.NewUnitOfWorkFactory(s.store)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	for _, sku := range []struct{ code, name string }{
		{"INV0001", "Linen dress"},
		{"INV0003", "Model X"},
		{"INV0004", "Model X"},
	} {
		created, err := inventory.NewSKU(sku.code, sku.name, "dress",
			inventory.Costs{SewingCost: decimal.NewFromInt(10000)}, decimal.NewFromInt(25000))
		s.Require().NoError(err)
		s.Require().NoError(uow.SKURepository().Add(ctx, created))
	}
	s.Require().NoError(uow.Commit(ctx))

	uow = s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	dress, err := uow.SKURepository().Get(ctx, "INV0001")
	s.Require().NoError(err)
	for _, m := range []struct {
		delta int
		kind  inventory.MovementType
		ref   string
		at    time.Time
	}{
		{10, inventory.Manual, "opening", at(0)},
		{-2, inventory.Withdraw, "100000000001", at(1)},
		{-1, inventory.Withdraw, "100000000002", at(2)},
		{-1, inventory.Withdraw, "100000000003", at(2)},
	} {
		movement, mErr := inventory.NewMovement("INV0001", "Linen dress", m.delta, m.kind, m.ref, "", m.at)
		s.Require().NoError(mErr)
		s.Require().NoError(uow.MovementLedger().Append(ctx, movement))
		_, mErr = dress.ApplyMovement(movement)
		s.Require().NoError(mErr)
	}
	s.Require().NoError(uow.SKURepository().Update(ctx, dress))

	s.addOrder(uow, "100000000001", 25000, "main", 2, order.Shipping, order.Delivered)
	s.addOrder(uow, "100000000002", 30000, "main", 1, order.Shipping)
	s.addOrder(uow, "100000000003", 25000, "side", 1, order.Shipping)
	s.addOrder(uow, "100000000004", 20000, "side", 1)

	s.entryID = kernel.NewUUID()
	entry, err := production.NewEntry(s.entryID, at(0), "P-7", "Linen dress", 4, decimal.NewFromInt(9000))
	s.Require().NoError(err)
	entry.Resolve("INV0001")
	s.Require().NoError(uow.ProductionLogRepository().Add(ctx, entry))

	s.Require().NoError(uow.Commit(ctx))
}

// addOrder creates an order on day n (taken from its last digit) and moves it
// through path, one day per step.
func (s *QueriesTestSuite) addOrder(uow ports.UnitOfWork, id string, price int64, page string, qty int, path ...order.Status) {
	item, err := order.NewItem("INV0001", "", qty)
	s.Require().NoError(err)

	n := int(id[len(id)-1] - '0')
	o, err := order.NewOrder(kernel.MustNewOrderID(id),
		order.Details{Price: decimal.NewFromInt(price), Page: page}, []order.Item{item}, order.Ready, at(n-1))
	s.Require().NoError(err)

	for step, to := range path {
		_, err = o.Transition(to, "", order.StrictTransitions, at(n+step))
		s.Require().NoError(err)
	}
	s.Require().NoError(uow.OrderRepository().Add(s.T().Context(), o))
}

func (s *QueriesTestSuite) TestGetOrder() {
	ctx := s.T().Context()
	h := queries.NewGetOrderQueryHandler(s.factory)

	query, err := queries.NewGetOrderQuery(kernel.MustNewOrderID("100000000001"))
	s.Require().NoError(err)
	resp, err := h.Handle(ctx, query)
	s.Require().NoError(err)

	s.Equal(order.Delivered, resp.Status)
	s.True(resp.ExplicitItems)
	s.Require().Len(resp.Items, 1)
	s.Equal(2, resp.Items[0].Qty)
	s.Require().NotNil(resp.DeliveredAt)
	s.Equal(at(2), *resp.DeliveredAt)

	query, err = queries.NewGetOrderQuery(kernel.MustNewOrderID("100000000404"))
	s.Require().NoError(err)
	_, err = h.Handle(ctx, query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueriesTestSuite) TestListOrders_FiltersAndOrdersNewestFirst() {
	h := queries.NewListOrdersQueryHandler(s.factory)

	query, err := queries.NewListOrdersQuery(ports.OrderFilter{})
	s.Require().NoError(err)
	all, err := h.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(all, 4)
	s.Equal("100000000004", all[0].ID)

	query, err = queries.NewListOrdersQuery(ports.OrderFilter{Statuses: []order.Status{order.Shipping}, Page: " side "})
	s.Require().NoError(err)
	shipping, err := h.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(shipping, 1)
	s.Equal("100000000003", shipping[0].ID)
}

func (s *QueriesTestSuite) TestSKUQueries() {
	ctx := s.T().Context()

	get, err := queries.NewGetSKUQuery("INV0001")
	s.Require().NoError(err)
	sku, err := queries.NewGetSKUQueryHandler(s.factory).Handle(ctx, get)
	s.Require().NoError(err)
	s.Equal(6, sku.Quantity)
	s.True(decimal.NewFromInt(10000).Equal(sku.UnitCost))

	list, err := queries.NewListSKUsQueryHandler(s.factory).Handle(ctx, queries.NewListSKUsQuery())
	s.Require().NoError(err)
	s.Len(list, 3)

	resolver := queries.NewResolveSKUQueryHandler(s.factory)

	byName, err := queries.NewResolveSKUQuery(" linen DRESS ")
	s.Require().NoError(err)
	resolved, err := resolver.Handle(ctx, byName)
	s.Require().NoError(err)
	s.Equal("INV0001", resolved.Code)

	ambiguous, err := queries.NewResolveSKUQuery("Model X")
	s.Require().NoError(err)
	_, err = resolver.Handle(ctx, ambiguous)
	s.Require().ErrorIs(err, errs.ErrAmbiguousReference)

	byCode, err := queries.NewResolveSKUQuery("INV0004")
	s.Require().NoError(err)
	resolved, err = resolver.Handle(ctx, byCode)
	s.Require().NoError(err)
	s.Equal("INV0004", resolved.Code)
}

func (s *QueriesTestSuite) TestGetMovements() {
	ctx := s.T().Context()
	h := queries.NewGetMovementsQueryHandler(s.factory)

	byCode, err := queries.NewGetMovementsQuery("INV0001", nil, "")
	s.Require().NoError(err)
	movements, err := h.Handle(ctx, byCode)
	s.Require().NoError(err)
	s.Require().Len(movements, 4)
	for i, m := range movements {
		s.Equal(int64(i+1), m.ID)
	}

	byRef, err := queries.NewGetMovementsQuery("", nil, "100000000001")
	s.Require().NoError(err)
	movements, err = h.Handle(ctx, byRef)
	s.Require().NoError(err)
	s.Require().Len(movements, 1)
	s.Equal(inventory.Withdraw, movements[0].Type)

	byDay, err := queries.NewGetMovementsQuery("", ptr(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)), "")
	s.Require().NoError(err)
	movements, err = h.Handle(ctx, byDay)
	s.Require().NoError(err)
	s.Len(movements, 2)
}

func (s *QueriesTestSuite) TestGetPendingOrders_NewestFirstWithShares() {
	h := queries.NewGetPendingOrdersQueryHandler(s.store)

	query, err := queries.NewGetPendingOrdersQuery(nil, nil)
	s.Require().NoError(err)
	resp, err := h.Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.Require().Len(resp.Orders, 2)
	s.Equal("100000000003", resp.Orders[0].Order.ID)
	s.Equal("100000000002", resp.Orders[1].Order.ID)
	s.True(decimal.NewFromInt(55000).Equal(resp.Total))
	s.True(decimal.NewFromInt(25000).Equal(resp.Orders[0].Shares["INV0001"]))

	query, err = queries.NewGetPendingOrdersQuery(ptr(at(3)), nil)
	s.Require().NoError(err)
	resp, err = h.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(resp.Orders, 1)
	s.Equal("100000000003", resp.Orders[0].Order.ID)
}

func (s *QueriesTestSuite) TestGetProfitabilityReport() {
	h := queries.NewGetProfitabilityReportQueryHandler(s.store)

	query, err := queries.NewGetProfitabilityReportQuery(nil, nil, "",
		decimal.NewFromInt(5000), decimal.NewFromInt(1000), decimal.Zero)
	s.Require().NoError(err)

	first, err := h.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	second, err := h.Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, first.Summary.DeliveredCount)
	s.True(decimal.NewFromInt(25000).Equal(first.Summary.Revenue))
	s.True(decimal.NewFromInt(20000).Equal(first.Summary.COGS))
	s.Equal(2, first.Summary.PendingCount)
}

func (s *QueriesTestSuite) TestGetOrderStats() {
	h := queries.NewGetOrderStatsQueryHandler(s.store)

	query, err := queries.NewGetOrderStatsQuery(nil, nil)
	s.Require().NoError(err)
	stats, err := h.Handle(s.T().Context(), query)
	s.Require().NoError(err)

	s.Equal(4, stats.TotalOrders)
	s.True(decimal.NewFromInt(100000).Equal(stats.TotalAmount))
	s.Len(stats.DailyTrend, 4)
}

func (s *QueriesTestSuite) TestListProduction() {
	h := queries.NewListProductionQueryHandler(s.factory)

	resp, err := h.Handle(s.T().Context(), queries.NewListProductionQuery(true))
	s.Require().NoError(err)
	s.Require().Len(resp.Entries, 1)
	s.Equal(s.entryID.String(), resp.Entries[0].ID)
	s.Equal("INV0001", resp.Entries[0].SKUCode)
	s.True(decimal.NewFromInt(36000).Equal(resp.Unpaid))
}

func TestGetRecentAlertsQueryHandler(t *testing.T) {
	ring := alerts.NewRing(10, slog.New(slog.DiscardHandler))
	for _, subject := range []string{"INV0001", "INV0002", "INV0003"} {
		ring.Notify(t.Context(), ports.Alert{Kind: ports.AlertNegativeStock, Subject: subject, At: day0})
	}

	query, err := queries.NewGetRecentAlertsQuery(2)
	require.NoError(t, err)
	recent, err := queries.NewGetRecentAlertsQueryHandler(ring).Handle(t.Context(), query)
	require.NoError(t, err)

	require.Len(t, recent, 2)
	assert.Equal(t, "INV0003", recent[0].Subject)
}

func TestQueryConstructors(t *testing.T) {
	_, err := queries.NewGetProfitabilityReportQuery(ptr(at(2)), ptr(at(1)), "", decimal.Zero, decimal.Zero, decimal.Zero)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewGetProfitabilityReportQuery(nil, nil, "", decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetMovementsQuery("", nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetMovementsQuery("INV0001", nil, "100000000001")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListOrdersQuery(ports.OrderFilter{Statuses: []order.Status{order.Unknown}})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	query, err := queries.NewGetRecentAlertsQuery(0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultAlertsLimit, query.Limit())

	_, err = queries.NewGetRecentAlertsQuery(queries.MaxAlertsLimit + 1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetSKUQuery(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestQueryHandlers_RejectUnconstructedQueries(t *testing.T) {
	store := memory.NewStore()

	_, err := queries.NewGetProfitabilityReportQueryHandler(store).Handle(t.Context(), queries.GetProfitabilityReportQuery{})
	require.ErrorIs(t, err, queries.ErrGetProfitabilityReportQueryIsNotConstructed)

	_, err = queries.NewGetOrderQueryHandler(memory.NewUnitOfWorkFactory(store)).Handle(t.Context(), queries.GetOrderQuery{})
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
