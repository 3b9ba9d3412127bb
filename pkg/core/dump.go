package core

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// securityDump is one security's aggregate view, recomputed from
// AllOrders() rather than read off backend internals, so Dump only
// depends on CacheBackend's exported surface.
type securityDump struct {
	securityID    string
	totalBuy      uint64
	totalSell     uint64
	leadCompany   string
	leadVolume    uint64
	matchingSize  uint32
}

// Dump writes a human-readable snapshot of every security with a live
// order to w: totals, the leading company by combined volume, and the
// matching size, ambient debug tooling not part of the six required
// operations (SPEC_FULL.md, Debug/introspection).
func (c *OrderCache) Dump(w io.Writer) {
	orders := c.backend.AllOrders()

	bySecurity := make(map[string]*securityDump)
	companyVolume := make(map[string]map[string]uint64) // securityID -> company -> combined

	for _, o := range orders {
		d, ok := bySecurity[o.SecurityID()]
		if !ok {
			d = &securityDump{securityID: o.SecurityID()}
			bySecurity[o.SecurityID()] = d
			companyVolume[o.SecurityID()] = make(map[string]uint64)
		}
		qty := uint64(o.Quantity())
		if o.Side() == Buy {
			d.totalBuy += qty
		} else {
			d.totalSell += qty
		}
		companyVolume[o.SecurityID()][o.Company()] += qty
	}

	for securityID, d := range bySecurity {
		for company, vol := range companyVolume[securityID] {
			if vol > d.leadVolume {
				d.leadVolume = vol
				d.leadCompany = company
			}
		}
		d.matchingSize = c.backend.MatchingSize(securityID)
	}

	ids := make([]string, 0, len(bySecurity))
	for id := range bySecurity {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgYellow)

	header.Fprintf(w, "order cache: %s live orders across %s securities\n",
		humanize.Comma(int64(len(orders))), humanize.Comma(int64(len(ids))))

	for _, id := range ids {
		d := bySecurity[id]
		header.Fprintf(w, "\n%s\n", id)
		label.Fprintf(w, "  buy=%s sell=%s lead=%s(%s) matchingSize=%s\n",
			humanize.Comma(int64(d.totalBuy)),
			humanize.Comma(int64(d.totalSell)),
			orDash(d.leadCompany),
			humanize.Comma(int64(d.leadVolume)),
			humanize.Comma(int64(d.matchingSize)),
		)
	}

	fmt.Fprintln(w)
	for _, op := range []string{opAdd, opCancel, opCancelForUser, opCancelForSecurityMinQty, opMatchingSize, opAllOrders} {
		stats := c.LatencyStats(op)
		if stats.Count == 0 {
			continue
		}
		label.Fprintf(w, "  %-28s n=%s p50=%dus p90=%dus p99=%dus max=%dus\n",
			op, humanize.Comma(stats.Count), stats.P50, stats.P90, stats.P99, stats.Max)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
