package services_test

import (
	"testing"
	"time"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(days int) time.Time { return day0.Add(time.Duration(days) * 24 * time.Hour) }

type orderFixture struct {
	id      string
	page    string
	price   string
	items   []order.Item
	created time.Time
	path    []order.Status
	moved   time.Time
}

func buildOrder(t *testing.T, s orderFixture) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustNewOrderID(s.id),
		order.Details{Price: d(s.price), Page: s.page, ProductName: "legacy"},
		s.items, order.Ready, s.created)
	require.NoError(t, err)
	for _, st := range s.path {
		_, err = o.Transition(st, "", order.PermissiveTransitions, s.moved)
		require.NoError(t, err)
	}
	return o
}

func newSKU(t *testing.T, code, name, sewing string) *inventory.SKU {
	t.Helper()
	s, err := inventory.NewSKU(code, name, "", inventory.Costs{SewingCost: d(sewing)}, decimal.Zero)
	require.NoError(t, err)
	return s
}

func fixture(t *testing.T) services.CostingInput {
	skus := []*inventory.SKU{
		newSKU(t, "INV0001", "Linen dress", "10000"),
		newSKU(t, "INV0002", "Scarf", "2000"),
		newSKU(t, "INV0003", "Model X", "1"),
		newSKU(t, "INV0004", "Model X", "1"),
	}

	orders := []*order.Order{
		// delivered, page A, 2 dresses
		buildOrder(t, orderFixture{id: "100001", page: "A", price: "50000", created: at(0), moved: at(1),
			items: []order.Item{item(t, "INV0001", "", 2)}, path: []order.Status{order.Shipping, order.Delivered}}),
		// delivered, page B, dress + scarf
		buildOrder(t, orderFixture{id: "100002", page: "B", price: "30000", created: at(0), moved: at(2),
			items: []order.Item{item(t, "INV0001", "", 1), item(t, "", "Scarf", 1)}, path: []order.Status{order.Shipping, order.Delivered}}),
		// returned, page A
		buildOrder(t, orderFixture{id: "100003", page: "A", price: "25000", created: at(1), moved: at(2),
			items: []order.Item{item(t, "INV0001", "", 1)}, path: []order.Status{order.Shipping, order.Returned}}),
		// pending, multi item split 1:3
		buildOrder(t, orderFixture{id: "100004", page: "B", price: "40000", created: at(1), moved: at(2),
			items: []order.Item{item(t, "INV0002", "", 1), item(t, "INV0001", "", 3)}, path: []order.Status{order.Shipping}}),
		// delivered with ambiguous and unknown items
		buildOrder(t, orderFixture{id: "100005", page: "A", price: "10000", created: at(2), moved: at(3),
			items: []order.Item{item(t, "", "Model X", 1), item(t, "", "Ghost", 1)}, path: []order.Status{order.Shipping, order.Delivered}}),
		// delivered outside the range
		buildOrder(t, orderFixture{id: "100006", page: "A", price: "99999", created: at(-10), moved: at(-9),
			items: []order.Item{item(t, "INV0001", "", 1)}, path: []order.Status{order.Shipping, order.Delivered}}),
		// still ready
		buildOrder(t, orderFixture{id: "100007", page: "B", price: "30000", created: at(3),
			items: []order.Item{item(t, "INV0002", "", 4)}}),
	}

	m1, err := inventory.NewMovement("INV0001", "Linen dress", 10, inventory.Production, "log-1", "", at(0))
	require.NoError(t, err)
	m2, err := inventory.NewMovement("INV0001", "Linen dress", -2, inventory.Withdraw, "100001", "", at(-5))
	require.NoError(t, err)

	return services.CostingInput{
		Orders:    orders,
		SKUs:      skus,
		Movements: []inventory.Movement{m1.WithID(2), m2.WithID(1)},
	}
}

func rangeParams() services.ReportParams {
	from, to := at(0), at(5)
	return services.ReportParams{
		From:                &from,
		To:                  &to,
		ShippingFeePerOrder: d("5000"),
		AdsCost:             d("9000"),
		OtherCosts:          d("1000"),
	}
}

func TestCostingEngine_Summary(t *testing.T) {
	report := services.NewCostingEngine().Report(fixture(t), rangeParams())
	s := report.Summary

	assert.Equal(t, 3, s.DeliveredCount)
	assert.Equal(t, 1, s.ReturnedCount)
	assert.True(t, d("90000").Equal(s.Revenue), s.Revenue.String())
	// 2×10000 + (10000 + 2000) + 0 (ambiguous and unknown items cost nothing)
	assert.True(t, d("32000").Equal(s.COGS), s.COGS.String())
	assert.True(t, d("15000").Equal(s.ShippingTotal))
	// 90000 − 32000 − 15000 − 9000 − 1000
	assert.True(t, d("33000").Equal(s.NetProfit), s.NetProfit.String())
	assert.True(t, d("0.25").Equal(s.ReturnRate))
	assert.True(t, d("40000").Equal(s.PendingAmount))
	assert.Equal(t, 1, s.PendingCount)
}

func TestCostingEngine_OrdersAndUnresolved(t *testing.T) {
	report := services.NewCostingEngine().Report(fixture(t), rangeParams())

	ids := make([]string, 0, len(report.Orders))
	for _, row := range report.Orders {
		ids = append(ids, row.OrderID)
	}
	assert.Equal(t, []string{"100001", "100002", "100003", "100004", "100005"}, ids)

	first := report.Orders[0]
	assert.True(t, d("20000").Equal(first.COGS))
	assert.True(t, d("25000").Equal(first.Margin))
	assert.True(t, report.Orders[4].Unresolved)

	require.Len(t, report.Unresolved, 2)
	assert.Equal(t, "Ghost", report.Unresolved[0].Reference)
	assert.Equal(t, inventory.NotFound, report.Unresolved[0].Reason)
	assert.Equal(t, "Model X", report.Unresolved[1].Reference)
	assert.Equal(t, inventory.Ambiguous, report.Unresolved[1].Reason)
}

func TestCostingEngine_ByProduct(t *testing.T) {
	report := services.NewCostingEngine().Report(fixture(t), rangeParams())

	rows := make(map[string]services.ProductRow)
	for _, row := range report.ByProduct {
		rows[row.Code+"|"+row.Name] = row
	}

	dress := rows["INV0001|Linen dress"]
	assert.Equal(t, 3, dress.DeliveredPieces)
	assert.Equal(t, 1, dress.ReturnedPieces)
	assert.Equal(t, 3, dress.PendingPieces)
	// 2 + 1 + 1 + 3 ordered in range; order 100006 was created before it
	assert.Equal(t, 7, dress.OrderedPieces)
	// 50000 + 30000 split 1:1
	assert.True(t, d("65000").Equal(dress.Revenue), dress.Revenue.String())
	// 40000 split 1:3 across scarf and dress
	assert.True(t, d("30000").Equal(dress.PendingEstimate), dress.PendingEstimate.String())
	assert.True(t, d("0.75").Equal(dress.DeliveryRate))
	assert.True(t, d("0.25").Equal(dress.ReturnRate))

	scarf := rows["INV0002|Scarf"]
	assert.True(t, d("10000").Equal(scarf.PendingEstimate))
	assert.Equal(t, 6, scarf.OrderedPieces, "name reference resolves to the same sku as its code")

	ghost := rows["|Ghost"]
	assert.True(t, ghost.Unresolved)
}

func TestCostingEngine_ByPageAdsShare(t *testing.T) {
	report := services.NewCostingEngine().Report(fixture(t), rangeParams())

	require.Len(t, report.ByPage, 2)
	a, b := report.ByPage[0], report.ByPage[1]
	assert.Equal(t, "A", a.Page)
	// page A revenue 60000 of 90000
	assert.True(t, d("6000").Equal(a.AdsShare), a.AdsShare.String())
	assert.True(t, d("3000").Equal(b.AdsShare), b.AdsShare.String())
	assert.True(t, d("40000").Equal(b.PendingAmount))
	assert.Equal(t, 1, a.ReturnedCount)
}

func TestCostingEngine_PageFilter(t *testing.T) {
	p := rangeParams()
	p.Page = "b"

	report := services.NewCostingEngine().Report(fixture(t), p)

	assert.Equal(t, 1, report.Summary.DeliveredCount)
	assert.True(t, d("30000").Equal(report.Summary.Revenue))
	require.Len(t, report.ByPage, 1)
	assert.Equal(t, "B", report.ByPage[0].Page)
}

func TestCostingEngine_EmptyInput(t *testing.T) {
	report := services.NewCostingEngine().Report(services.CostingInput{}, services.ReportParams{})

	assert.True(t, report.Summary.ReturnRate.IsZero())
	assert.True(t, report.Summary.NetProfit.IsZero())
	assert.Empty(t, report.Orders)
	assert.Empty(t, report.Rankings.MostOrdered)
}

func TestCostingEngine_Idempotent(t *testing.T) {
	in := fixture(t)
	engine := services.NewCostingEngine()

	first := engine.Report(in, rangeParams())
	second := engine.Report(in, rangeParams())

	assert.Equal(t, first, second)
}

func TestCostingEngine_Rankings(t *testing.T) {
	report := services.NewCostingEngine().Report(fixture(t), rangeParams())

	require.NotEmpty(t, report.Rankings.MostOrdered)
	assert.Equal(t, "INV0001", report.Rankings.MostOrdered[0].Code)
	assert.Equal(t, "INV0001", report.Rankings.WorstReturnRate[0].Code)
	assert.True(t, d("1").Equal(report.Rankings.BestDeliveryRate[0].Value))
}

func TestCostingEngine_Movements(t *testing.T) {
	report := services.NewCostingEngine().Report(fixture(t), rangeParams())

	require.Len(t, report.Movements, 1)
	assert.Equal(t, int64(2), report.Movements[0].ID)
	assert.Equal(t, inventory.Production, report.Movements[0].Type)
}

func TestCostingEngine_Stats(t *testing.T) {
	in := fixture(t)
	from, to := at(0), at(5)

	stats := services.NewCostingEngine().Stats(in.Orders, &from, &to)

	assert.Equal(t, 6, stats.TotalOrders)
	assert.True(t, d("185000").Equal(stats.TotalAmount))

	counts := make(map[order.Status]int)
	for _, row := range stats.ByStatus {
		counts[row.Status] = row.Count
	}
	assert.Equal(t, 3, counts[order.Delivered])
	assert.Equal(t, 1, counts[order.Ready])
	assert.True(t, d("50").Equal(stats.ByStatus[3].Percent))

	require.NotEmpty(t, stats.ByPrice)
	assert.True(t, d("50000").Equal(stats.ByPrice[0].Price), "highest delivered amount first")
	for _, row := range stats.ByPrice {
		if row.Price.Equal(d("30000")) {
			assert.Equal(t, 2, row.Orders)
			assert.True(t, d("0").Equal(row.ReturnPercent))
		}
		if row.Price.Equal(d("25000")) {
			assert.True(t, d("100").Equal(row.ReturnPercent))
		}
	}

	require.Len(t, stats.DailyTrend, 4)
	assert.Equal(t, services.TrendFlat, stats.DailyTrend[0].Trend)
	assert.Equal(t, services.TrendFlat, stats.DailyTrend[1].Trend)
	assert.Equal(t, services.TrendDown, stats.DailyTrend[2].Trend)
	assert.Equal(t, services.TrendFlat, stats.DailyTrend[3].Trend)
}

func TestPendingSplit(t *testing.T) {
	o := buildOrder(t, orderFixture{id: "200001", price: "100", created: day0, moved: day0,
		items: []order.Item{item(t, "A1", "", 1), item(t, "A2", "", 1), item(t, "A3", "", 1)},
		path:  []order.Status{order.Shipping}})

	split := services.PendingSplit(o)

	assert.True(t, d("33.33").Equal(split["A1"]))
	assert.True(t, d("33.34").Equal(split["A3"]))
	sum := split["A1"].Add(split["A2"]).Add(split["A3"])
	assert.True(t, d("100").Equal(sum))
}
