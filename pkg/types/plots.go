// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PlotNames lists the six mobility categories in the order reports draw
// them. Both the chart extractor and the headline extractor number plots by
// this order within a region, so the shared index keys align by construction
// rather than by incidental parse order.
var PlotNames = [...]string{
	"Retail & recreation",
	"Grocery & pharmacy",
	"Parks",
	"Transit stations",
	"Workplaces",
	"Residential",
}

// PlotNameFor returns the plot name for a global sequential plot index.
func PlotNameFor(index int) string {
	if index < 0 {
		return ""
	}
	return PlotNames[index%len(PlotNames)]
}
