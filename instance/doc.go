// Package instance reads and writes fair-allocation problem instances.
//
// An instance lists agents with additive valuations and their current
// fractional shares. Three input encodings are accepted:
//
//	yaml / json   agents: [{name, valuation: {item: v}, allocation: {item: f}}]
//	csv           name,<item>-valuation...,<item>-allocation...
//
// The CSV layout is the spreadsheet layout: one row per agent, a valuation and
// an allocation column per item. Reports are written as text (Allocation.Render),
// yaml or json.
package instance
