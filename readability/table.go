package readability

import (
	"strconv"

	"golang.org/x/net/html"
)

// markDataTables classifies every table below root as data or layout. The
// marks live in the attempt and are consulted by conditional cleaning.
func (a *attempt) markDataTables(root *html.Node) {
	for _, table := range getAllNodesWithTag(root, "table") {
		a.dataTables[table] = isDataTable(table)
	}
}

// isDataTable reports whether table holds tabular data rather than page
// layout.
func isDataTable(table *html.Node) bool {
	if getAttribute(table, "role") == "presentation" {
		return false
	}
	if getAttribute(table, "datatable") == "0" {
		return false
	}
	if hasAttribute(table, "summary") {
		return true
	}
	if captions := getAllNodesWithTag(table, "caption"); len(captions) > 0 && captions[0].FirstChild != nil {
		return true
	}
	if len(getAllNodesWithTag(table, "col", "colgroup", "tfoot", "thead", "th")) > 0 {
		return true
	}
	if len(getAllNodesWithTag(table, "table")) > 0 {
		return false
	}

	rows, columns := rowAndColumnCount(table)
	if rows >= 10 || columns > 4 {
		return true
	}
	return rows*columns > 10
}

// rowAndColumnCount sizes a table, honoring rowspan and colspan.
func rowAndColumnCount(table *html.Node) (rows, columns int) {
	for _, tr := range getAllNodesWithTag(table, "tr") {
		rows += span(tr, "rowspan")
		cols := 0
		for _, td := range getAllNodesWithTag(tr, "td") {
			cols += span(td, "colspan")
		}
		columns = max(columns, cols)
	}
	return rows, columns
}

func span(n *html.Node, attr string) int {
	v, err := strconv.Atoi(getAttribute(n, attr))
	if err != nil || v <= 0 {
		return 1
	}
	return v
}
