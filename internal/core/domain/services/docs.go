// Package services holds the domain services that span aggregates.
//
// The package includes:
//   - StockEffectPlanner: the stock adjustments implied by order transitions
//     and by item-list edits on dispatched orders
//   - CostingEngine: read-only profitability, statistics and ranking reports
//     over orders, the SKU catalog and the movement ledger
//
// Both services are pure functions of their inputs; the application layer
// loads the aggregates and applies the results.
package services
