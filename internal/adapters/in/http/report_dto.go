package http

import (
	"time"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

type ReportSummary struct {
	Revenue        decimal.Decimal `json:"revenue"`
	COGS           decimal.Decimal `json:"cogs"`
	ShippingTotal  decimal.Decimal `json:"shippingTotal"`
	AdsCost        decimal.Decimal `json:"adsCost"`
	OtherCosts     decimal.Decimal `json:"otherCosts"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	DeliveredCount int             `json:"deliveredCount"`
	ReturnedCount  int             `json:"returnedCount"`
	ReturnRate     decimal.Decimal `json:"returnRate"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
	PendingCount   int             `json:"pendingCount"`
}

type ReportOrder struct {
	OrderID     string          `json:"orderId"`
	Status      order.Status    `json:"status"`
	Page        string          `json:"page,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Price       decimal.Decimal `json:"price"`
	Pieces      int             `json:"pieces"`
	COGS        decimal.Decimal `json:"cogs"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Margin      decimal.Decimal `json:"margin"`
	Unresolved  bool            `json:"unresolved,omitempty"`
}

type ReportProduct struct {
	Code            string          `json:"code,omitempty"`
	Name            string          `json:"name"`
	OrderedPieces   int             `json:"orderedPieces"`
	DeliveredPieces int             `json:"deliveredPieces"`
	ReturnedPieces  int             `json:"returnedPieces"`
	PendingPieces   int             `json:"pendingPieces"`
	Revenue         decimal.Decimal `json:"revenue"`
	COGS            decimal.Decimal `json:"cogs"`
	PendingEstimate decimal.Decimal `json:"pendingEstimate"`
	DeliveryRate    decimal.Decimal `json:"deliveryRate"`
	ReturnRate      decimal.Decimal `json:"returnRate"`
	Unresolved      bool            `json:"unresolved,omitempty"`
}

type ReportPage struct {
	Page           string          `json:"page"`
	Revenue        decimal.Decimal `json:"revenue"`
	COGS           decimal.Decimal `json:"cogs"`
	ShippingTotal  decimal.Decimal `json:"shippingTotal"`
	AdsShare       decimal.Decimal `json:"adsShare"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	DeliveredCount int             `json:"deliveredCount"`
	ReturnedCount  int             `json:"returnedCount"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
}

type RankingEntry struct {
	Code  string          `json:"code,omitempty"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type Rankings struct {
	MostOrdered      []RankingEntry `json:"mostOrdered"`
	BestDeliveryRate []RankingEntry `json:"bestDeliveryRate"`
	WorstReturnRate  []RankingEntry `json:"worstReturnRate"`
}

type UnresolvedItem struct {
	OrderID   string `json:"orderId"`
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

type ProfitabilityReport struct {
	From       *time.Time       `json:"from,omitempty"`
	To         *time.Time       `json:"to,omitempty"`
	Page       string           `json:"page,omitempty"`
	Summary    ReportSummary    `json:"summary"`
	Orders     []ReportOrder    `json:"orders"`
	ByProduct  []ReportProduct  `json:"byProduct"`
	ByPage     []ReportPage     `json:"byPage"`
	Movements  []Movement       `json:"movements"`
	Stats      OrderStats       `json:"stats"`
	Rankings   Rankings         `json:"rankings"`
	Unresolved []UnresolvedItem `json:"unresolved"`
}

type StatusCount struct {
	Status  order.Status    `json:"status"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

type PriceBreakdown struct {
	Price           decimal.Decimal `json:"price"`
	Orders          int             `json:"orders"`
	ByStatus        map[string]int  `json:"byStatus"`
	DeliveredAmount decimal.Decimal `json:"deliveredAmount"`
	ReturnPercent   decimal.Decimal `json:"returnPercent"`
}

type DailyTrend struct {
	Day    string         `json:"day"`
	Orders int            `json:"orders"`
	Trend  services.Trend `json:"trend"`
}

type OrderStats struct {
	TotalOrders int              `json:"totalOrders"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	ByStatus    []StatusCount    `json:"byStatus"`
	ByPrice     []PriceBreakdown `json:"byPrice"`
	DailyTrend  []DailyTrend     `json:"dailyTrend"`
}

func toProfitabilityReport(r services.Report) ProfitabilityReport {
	s := r.Summary
	out := ProfitabilityReport{
		From: r.Params.From,
		To:   r.Params.To,
		Page: r.Params.Page,
		Summary: ReportSummary{
			Revenue:        s.Revenue,
			COGS:           s.COGS,
			ShippingTotal:  s.ShippingTotal,
			AdsCost:        s.AdsCost,
			OtherCosts:     s.OtherCosts,
			NetProfit:      s.NetProfit,
			DeliveredCount: s.DeliveredCount,
			ReturnedCount:  s.ReturnedCount,
			ReturnRate:     s.ReturnRate,
			PendingAmount:  s.PendingAmount,
			PendingCount:   s.PendingCount,
		},
		Orders:     make([]ReportOrder, 0, len(r.Orders)),
		ByProduct:  make([]ReportProduct, 0, len(r.ByProduct)),
		ByPage:     make([]ReportPage, 0, len(r.ByPage)),
		Movements:  make([]Movement, 0, len(r.Movements)),
		Stats:      toOrderStats(r.Stats),
		Unresolved: make([]UnresolvedItem, 0, len(r.Unresolved)),
		Rankings: Rankings{
			MostOrdered:      toRanking(r.Rankings.MostOrdered),
			BestDeliveryRate: toRanking(r.Rankings.BestDeliveryRate),
			WorstReturnRate:  toRanking(r.Rankings.WorstReturnRate),
		},
	}

	for _, o := range r.Orders {
		out.Orders = append(out.Orders, ReportOrder(o))
	}
	for _, p := range r.ByProduct {
		out.ByProduct = append(out.ByProduct, ReportProduct(p))
	}
	for _, p := range r.ByPage {
		out.ByPage = append(out.ByPage, ReportPage(p))
	}
	for _, m := range r.Movements {
		out.Movements = append(out.Movements, Movement(m))
	}
	for _, u := range r.Unresolved {
		out.Unresolved = append(out.Unresolved, UnresolvedItem{
			OrderID:   u.OrderID,
			Reference: u.Reference,
			Reason:    u.Reason.String(),
		})
	}

	return out
}

func toRanking(rows []services.RankingRow) []RankingEntry {
	out := make([]RankingEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, RankingEntry(row))
	}
	return out
}

func toOrderStats(s services.Stats) OrderStats {
	out := OrderStats{
		TotalOrders: s.TotalOrders,
		TotalAmount: s.TotalAmount,
		ByStatus:    make([]StatusCount, 0, len(s.ByStatus)),
		ByPrice:     make([]PriceBreakdown, 0, len(s.ByPrice)),
		DailyTrend:  make([]DailyTrend, 0, len(s.DailyTrend)),
	}
	for _, row := range s.ByStatus {
		out.ByStatus = append(out.ByStatus, StatusCount(row))
	}
	for _, row := range s.ByPrice {
		byStatus := make(map[string]int, len(row.ByStatus))
		for status, count := range row.ByStatus {
			byStatus[status.String()] = count
		}
		out.ByPrice = append(out.ByPrice, PriceBreakdown{
			Price:           row.Price,
			Orders:          row.Orders,
			ByStatus:        byStatus,
			DeliveredAmount: row.DeliveredAmount,
			ReturnPercent:   row.ReturnPercent,
		})
	}
	for _, row := range s.DailyTrend {
		out.DailyTrend = append(out.DailyTrend, DailyTrend(row))
	}
	return out
}
