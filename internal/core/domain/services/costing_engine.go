package services

import (
	"sort"
	"strings"
	"time"

	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// RankingSize is how many rows each ranking keeps.
const RankingSize = 5

var hundred = decimal.NewFromInt(100)

// ReportParams selects and prices a profitability report.
type ReportParams struct {
	// From and To bound the report; nil bounds are open.
	From *time.Time
	To   *time.Time

	// Page restricts the report to one sales page when not empty.
	Page string

	ShippingFeePerOrder decimal.Decimal
	AdsCost             decimal.Decimal
	OtherCosts          decimal.Decimal
}

// CostingInput is a consistent view of the three stores the engine reads.
type CostingInput struct {
	Orders    []*order.Order
	SKUs      []*inventory.SKU
	Movements []inventory.Movement
}

type Summary struct {
	Revenue        decimal.Decimal
	COGS           decimal.Decimal
	ShippingTotal  decimal.Decimal
	AdsCost        decimal.Decimal
	OtherCosts     decimal.Decimal
	NetProfit      decimal.Decimal
	DeliveredCount int
	ReturnedCount  int

	// ReturnRate is returned / (delivered + returned), zero when both are zero.
	ReturnRate decimal.Decimal

	// PendingAmount is the price of orders currently Shipping. It is never
	// part of NetProfit.
	PendingAmount decimal.Decimal
	PendingCount  int
}

// OrderRow is one order that contributed to the report.
type OrderRow struct {
	OrderID     string
	Status      order.Status
	Page        string
	CreatedAt   time.Time
	Price       decimal.Decimal
	Pieces      int
	COGS        decimal.Decimal
	ShippingFee decimal.Decimal

	// Margin is price − COGS − shipping fee for delivered orders, zero otherwise.
	Margin decimal.Decimal

	// Unresolved is set when at least one item did not resolve to a SKU and
	// was costed at zero.
	Unresolved bool
}

// ProductRow aggregates one SKU (or one unresolved reference) across orders.
type ProductRow struct {
	Code            string
	Name            string
	OrderedPieces   int
	DeliveredPieces int
	ReturnedPieces  int
	PendingPieces   int
	Revenue         decimal.Decimal
	COGS            decimal.Decimal

	// PendingEstimate is this product's share of Shipping order prices. Orders
	// with several items split their price by quantity, so it is an estimate.
	PendingEstimate decimal.Decimal
	DeliveryRate    decimal.Decimal
	ReturnRate      decimal.Decimal
	Unresolved      bool
}

type PageRow struct {
	Page           string
	Revenue        decimal.Decimal
	COGS           decimal.Decimal
	ShippingTotal  decimal.Decimal
	AdsShare       decimal.Decimal
	NetProfit      decimal.Decimal
	DeliveredCount int
	ReturnedCount  int
	PendingAmount  decimal.Decimal
}

// MovementRow is a ledger entry inside the report range.
type MovementRow struct {
	ID    int64
	At    time.Time
	Code  string
	Name  string
	Delta int
	Type  inventory.MovementType
	Ref   string
	Notes string
}

type StatusRow struct {
	Status  order.Status
	Count   int
	Percent decimal.Decimal
}

// Stats are order counts over orders created in range.
type Stats struct {
	TotalOrders int
	TotalAmount decimal.Decimal
	ByStatus    []StatusRow
	ByPrice     []PriceRow
	DailyTrend  []TrendRow
}

type PriceRow struct {
	Price           decimal.Decimal
	Orders          int
	ByStatus        map[order.Status]int
	DeliveredAmount decimal.Decimal
	ReturnPercent   decimal.Decimal
}

type Trend string

const (
	TrendUp   Trend = "Up"
	TrendDown Trend = "Down"
	TrendFlat Trend = "Flat"
)

type TrendRow struct {
	Day    string
	Orders int
	Trend  Trend
}

type RankingRow struct {
	Code  string
	Name  string
	Value decimal.Decimal
}

type Rankings struct {
	MostOrdered      []RankingRow
	BestDeliveryRate []RankingRow
	WorstReturnRate  []RankingRow
}

// UnresolvedItem is an order item the catalog could not resolve.
type UnresolvedItem struct {
	OrderID   string
	Reference string
	Reason    inventory.ResolutionKind
}

type Report struct {
	Params     ReportParams
	Summary    Summary
	Orders     []OrderRow
	ByProduct  []ProductRow
	ByPage     []PageRow
	Movements  []MovementRow
	Stats      Stats
	Rankings   Rankings
	Unresolved []UnresolvedItem
}

// CostingEngine builds profitability reports. It never mutates its input and
// produces identical output for identical input: every row list is sorted.
//
// Example:
//
//	engine := services.NewCostingEngine()
//	report := engine.Report(services.CostingInput{Orders: orders, SKUs: skus, Movements: ledger},
//	    services.ReportParams{From: &from, To: &to, ShippingFeePerOrder: decimal.NewFromInt(5000)})
//	fmt.Println(report.Summary.NetProfit)
type CostingEngine struct{}

func NewCostingEngine() CostingEngine {
	return CostingEngine{}
}

type catalog struct {
	byCode map[string]*inventory.SKU
	byName map[string][]*inventory.SKU
}

func newCatalog(skus []*inventory.SKU) catalog {
	c := catalog{
		byCode: make(map[string]*inventory.SKU, len(skus)),
		byName: make(map[string][]*inventory.SKU, len(skus)),
	}
	for _, s := range skus {
		c.byCode[s.Code()] = s
		key := inventory.NameKey(s.Name())
		c.byName[key] = append(c.byName[key], s)
	}
	return c
}

func (c catalog) resolve(reference string) inventory.Resolution {
	return inventory.Resolve(reference, c.byCode[reference], c.byName[inventory.NameKey(reference)])
}

// Report computes the profitability report.
//
// Orders count by the timestamp of the status they are in: Delivered orders
// by deliveredAt, Returned orders by returnedAt, Shipping orders (pending) by
// shippingAt. Ordered pieces, statistics and trends use createdAt.
func (e CostingEngine) Report(in CostingInput, p ReportParams) Report {
	cat := newCatalog(in.SKUs)
	orders := filterByPage(in.Orders, p.Page)

	report := Report{Params: p}
	summary := Summary{
		Revenue:       decimal.Zero,
		COGS:          decimal.Zero,
		ShippingTotal: decimal.Zero,
		AdsCost:       p.AdsCost,
		OtherCosts:    p.OtherCosts,
		PendingAmount: decimal.Zero,
	}

	products := make(map[string]*ProductRow)
	pages := make(map[string]*PageRow)
	unresolvedSeen := make(map[string]bool)

	product := func(reference string, res inventory.Resolution) *ProductRow {
		key, code, name := "ref:"+inventory.NameKey(reference), "", reference
		if res.Kind == inventory.Resolved {
			key, code, name = "code:"+res.SKU.Code(), res.SKU.Code(), res.SKU.Name()
		}
		row, ok := products[key]
		if !ok {
			row = &ProductRow{
				Code:            code,
				Name:            name,
				Revenue:         decimal.Zero,
				COGS:            decimal.Zero,
				PendingEstimate: decimal.Zero,
				Unresolved:      res.Kind != inventory.Resolved,
			}
			products[key] = row
		}
		return row
	}

	page := func(name string) *PageRow {
		row, ok := pages[name]
		if !ok {
			row = &PageRow{
				Page:          name,
				Revenue:       decimal.Zero,
				COGS:          decimal.Zero,
				ShippingTotal: decimal.Zero,
				AdsShare:      decimal.Zero,
				NetProfit:     decimal.Zero,
				PendingAmount: decimal.Zero,
			}
			pages[name] = row
		}
		return row
	}

	for _, o := range orders {
		items := o.Items()
		createdAt := o.CreatedAt()

		if order.InRange(&createdAt, p.From, p.To) {
			for _, item := range items {
				product(item.Reference(), cat.resolve(item.Reference())).OrderedPieces += item.Qty()
			}
		}

		var counted bool
		row := OrderRow{
			OrderID:     o.ID().String(),
			Status:      o.Status(),
			Page:        o.Page(),
			CreatedAt:   createdAt,
			Price:       o.Price(),
			Pieces:      order.TotalQty(items),
			COGS:        decimal.Zero,
			ShippingFee: decimal.Zero,
			Margin:      decimal.Zero,
		}

		switch o.Status() {
		case order.Delivered:
			if !order.InRange(o.DeliveredAt(), p.From, p.To) {
				continue
			}
			counted = true
			shares := splitByQty(o.Price(), items)
			for idx, item := range items {
				res := cat.resolve(item.Reference())
				cost := unitCost(res).Mul(decimal.NewFromInt(int64(item.Qty())))
				row.COGS = row.COGS.Add(cost)
				if res.Kind != inventory.Resolved {
					row.Unresolved = true
					e.flag(&report, unresolvedSeen, o, item, res)
				}
				acc := product(item.Reference(), res)
				acc.DeliveredPieces += item.Qty()
				acc.Revenue = acc.Revenue.Add(shares[idx])
				acc.COGS = acc.COGS.Add(cost)
			}
			row.ShippingFee = p.ShippingFeePerOrder
			row.Margin = o.Price().Sub(row.COGS).Sub(p.ShippingFeePerOrder)

			summary.DeliveredCount++
			summary.Revenue = summary.Revenue.Add(o.Price())
			summary.COGS = summary.COGS.Add(row.COGS)

			pg := page(o.Page())
			pg.DeliveredCount++
			pg.Revenue = pg.Revenue.Add(o.Price())
			pg.COGS = pg.COGS.Add(row.COGS)
			pg.ShippingTotal = pg.ShippingTotal.Add(p.ShippingFeePerOrder)

		case order.Returned:
			if !order.InRange(o.ReturnedAt(), p.From, p.To) {
				continue
			}
			counted = true
			for _, item := range items {
				acc := product(item.Reference(), cat.resolve(item.Reference()))
				acc.ReturnedPieces += item.Qty()
			}
			summary.ReturnedCount++
			page(o.Page()).ReturnedCount++

		case order.Shipping:
			if !order.InRange(o.ShippingAt(), p.From, p.To) {
				continue
			}
			counted = true
			shares := splitByQty(o.Price(), items)
			for idx, item := range items {
				acc := product(item.Reference(), cat.resolve(item.Reference()))
				acc.PendingPieces += item.Qty()
				acc.PendingEstimate = acc.PendingEstimate.Add(shares[idx])
			}
			summary.PendingCount++
			summary.PendingAmount = summary.PendingAmount.Add(o.Price())
			pg := page(o.Page())
			pg.PendingAmount = pg.PendingAmount.Add(o.Price())

		case order.Unknown, order.Processing, order.Ready:
		}

		if counted {
			report.Orders = append(report.Orders, row)
		}
	}

	summary.ShippingTotal = p.ShippingFeePerOrder.Mul(decimal.NewFromInt(int64(summary.DeliveredCount)))
	summary.ReturnRate = ratio(summary.ReturnedCount, summary.DeliveredCount+summary.ReturnedCount)
	summary.NetProfit = summary.Revenue.
		Sub(summary.COGS).
		Sub(summary.ShippingTotal).
		Sub(p.AdsCost).
		Sub(p.OtherCosts)
	report.Summary = summary

	report.ByPage = pageRows(pages, summary.Revenue, p.AdsCost)
	report.ByProduct = productRows(products)
	report.Rankings = rank(report.ByProduct)
	report.Movements = movementRows(in.Movements, p.From, p.To)
	report.Stats = e.Stats(orders, p.From, p.To)

	sort.Slice(report.Orders, func(i, j int) bool { return report.Orders[i].OrderID < report.Orders[j].OrderID })
	sort.Slice(report.Unresolved, func(i, j int) bool {
		if report.Unresolved[i].OrderID != report.Unresolved[j].OrderID {
			return report.Unresolved[i].OrderID < report.Unresolved[j].OrderID
		}
		return report.Unresolved[i].Reference < report.Unresolved[j].Reference
	})

	return report
}

func (CostingEngine) flag(r *Report, seen map[string]bool, o *order.Order, item order.Item, res inventory.Resolution) {
	key := o.ID().String() + "\x00" + item.Reference()
	if seen[key] {
		return
	}
	seen[key] = true
	r.Unresolved = append(r.Unresolved, UnresolvedItem{
		OrderID:   o.ID().String(),
		Reference: item.Reference(),
		Reason:    res.Kind,
	})
}

// Stats counts orders created in [from, to] by status, by price and by day.
func (CostingEngine) Stats(orders []*order.Order, from, to *time.Time) Stats {
	stats := Stats{TotalAmount: decimal.Zero}

	byStatus := make(map[order.Status]int)
	byPrice := make(map[string]*PriceRow)
	byDay := make(map[string]int)

	for _, o := range orders {
		createdAt := o.CreatedAt()
		if !order.InRange(&createdAt, from, to) {
			continue
		}

		stats.TotalOrders++
		stats.TotalAmount = stats.TotalAmount.Add(o.Price())
		byStatus[o.Status()]++
		byDay[createdAt.UTC().Format(time.DateOnly)]++

		priceKey := o.Price().String()
		row, ok := byPrice[priceKey]
		if !ok {
			row = &PriceRow{Price: o.Price(), ByStatus: make(map[order.Status]int), DeliveredAmount: decimal.Zero}
			byPrice[priceKey] = row
		}
		row.Orders++
		row.ByStatus[o.Status()]++
		if o.Status() == order.Delivered {
			row.DeliveredAmount = row.DeliveredAmount.Add(o.Price())
		}
	}

	for _, s := range order.Statuses() {
		stats.ByStatus = append(stats.ByStatus, StatusRow{
			Status:  s,
			Count:   byStatus[s],
			Percent: percent(byStatus[s], stats.TotalOrders),
		})
	}

	for _, row := range byPrice {
		row.ReturnPercent = percent(row.ByStatus[order.Returned], row.Orders)
		stats.ByPrice = append(stats.ByPrice, *row)
	}
	sort.Slice(stats.ByPrice, func(i, j int) bool {
		a, b := stats.ByPrice[i], stats.ByPrice[j]
		if c := a.DeliveredAmount.Cmp(b.DeliveredAmount); c != 0 {
			return c > 0
		}
		if a.Orders != b.Orders {
			return a.Orders > b.Orders
		}
		return a.Price.LessThan(b.Price)
	})

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for idx, day := range days {
		trend := TrendFlat
		if idx > 0 {
			switch prev := byDay[days[idx-1]]; {
			case byDay[day] > prev:
				trend = TrendUp
			case byDay[day] < prev:
				trend = TrendDown
			}
		}
		stats.DailyTrend = append(stats.DailyTrend, TrendRow{Day: day, Orders: byDay[day], Trend: trend})
	}

	return stats
}

// PendingSplit divides a Shipping order's price across its items by quantity.
// The last item absorbs the rounding remainder so the shares sum to the price.
func PendingSplit(o *order.Order) map[string]decimal.Decimal {
	items := o.Items()
	shares := splitByQty(o.Price(), items)
	out := make(map[string]decimal.Decimal, len(items))
	for idx, item := range items {
		out[item.Reference()] = out[item.Reference()].Add(shares[idx])
	}
	return out
}

func splitByQty(price decimal.Decimal, items []order.Item) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(items))
	total := order.TotalQty(items)
	if total == 0 {
		return shares
	}

	allocated := decimal.Zero
	for idx, item := range items {
		if idx == len(items)-1 {
			shares[idx] = price.Sub(allocated)
			break
		}
		share := price.Mul(decimal.NewFromInt(int64(item.Qty()))).
			Div(decimal.NewFromInt(int64(total))).
			Round(2)
		shares[idx] = share
		allocated = allocated.Add(share)
	}
	return shares
}

func unitCost(res inventory.Resolution) decimal.Decimal {
	if res.Kind != inventory.Resolved {
		return decimal.Zero
	}
	return res.SKU.UnitCost()
}

func filterByPage(orders []*order.Order, page string) []*order.Order {
	page = strings.TrimSpace(page)
	if page == "" {
		return orders
	}
	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if strings.EqualFold(o.Page(), page) {
			out = append(out, o)
		}
	}
	return out
}

func pageRows(pages map[string]*PageRow, totalRevenue, adsCost decimal.Decimal) []PageRow {
	rows := make([]PageRow, 0, len(pages))
	for _, p := range pages {
		row := *p
		if totalRevenue.IsPositive() {
			row.AdsShare = adsCost.Mul(row.Revenue).Div(totalRevenue).Round(2)
		}
		row.NetProfit = row.Revenue.Sub(row.COGS).Sub(row.ShippingTotal).Sub(row.AdsShare)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Page < rows[j].Page })
	return rows
}

func productRows(products map[string]*ProductRow) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		row := *p
		row.DeliveryRate = ratio(row.DeliveredPieces, row.DeliveredPieces+row.ReturnedPieces)
		row.ReturnRate = ratio(row.ReturnedPieces, row.DeliveredPieces+row.ReturnedPieces)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Code != rows[j].Code {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func rank(products []ProductRow) Rankings {
	byValue := func(rows []RankingRow) []RankingRow {
		sort.SliceStable(rows, func(i, j int) bool {
			if c := rows[i].Value.Cmp(rows[j].Value); c != 0 {
				return c > 0
			}
			return rows[i].Code+rows[i].Name < rows[j].Code+rows[j].Name
		})
		if len(rows) > RankingSize {
			rows = rows[:RankingSize]
		}
		return rows
	}

	var ordered, delivery, returns []RankingRow
	for _, p := range products {
		if p.OrderedPieces > 0 {
			ordered = append(ordered, RankingRow{Code: p.Code, Name: p.Name, Value: decimal.NewFromInt(int64(p.OrderedPieces))})
		}
		if p.DeliveredPieces+p.ReturnedPieces > 0 {
			delivery = append(delivery, RankingRow{Code: p.Code, Name: p.Name, Value: p.DeliveryRate})
			returns = append(returns, RankingRow{Code: p.Code, Name: p.Name, Value: p.ReturnRate})
		}
	}

	return Rankings{
		MostOrdered:      byValue(ordered),
		BestDeliveryRate: byValue(delivery),
		WorstReturnRate:  byValue(returns),
	}
}

func movementRows(movements []inventory.Movement, from, to *time.Time) []MovementRow {
	rows := make([]MovementRow, 0)
	for _, m := range movements {
		at := m.At()
		if !order.InRange(&at, from, to) {
			continue
		}
		rows = append(rows, MovementRow{
			ID:    m.ID(),
			At:    at,
			Code:  m.Code(),
			Name:  m.NameSnapshot(),
			Delta: m.Delta(),
			Type:  m.Type(),
			Ref:   m.Ref(),
			Notes: m.Notes(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// ratio is part/whole rounded to four places, zero on an empty whole.
func ratio(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Div(decimal.NewFromInt(int64(whole))).Round(4)
}

func percent(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole))).Round(2)
}
