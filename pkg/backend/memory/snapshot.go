package memory

import "github.com/erain9/ordercache/pkg/core"

// companyVolume is the (buy, sell) sum restricted to one security for one
// company, per spec.md section 3.
type companyVolume struct {
	buy  uint64
	sell uint64
}

func (v companyVolume) combined() uint64 {
	return v.buy + v.sell
}

// SecuritySnapshot is the per-security aggregate record of spec.md
// section 4.4: running totals, per-company volumes, and the leading
// (largest) combined company volume, updated incrementally on every
// add/remove so MatchingSize is an O(1) read.
type SecuritySnapshot struct {
	totalBuy  uint64
	totalSell uint64
	companies map[string]companyVolume
	leaders   *VolumeMultiset
}

// NewSecuritySnapshot creates an empty snapshot for one security.
func NewSecuritySnapshot() *SecuritySnapshot {
	return &SecuritySnapshot{
		companies: make(map[string]companyVolume),
		leaders:   NewVolumeMultiset(),
	}
}

// Add folds a newly-live order into the snapshot, per spec.md section
// 4.4 steps 1-5.
func (s *SecuritySnapshot) Add(order core.Order) {
	company := order.Company()
	qty := uint64(order.Quantity())
	isBuy := order.Side() == core.Buy

	v := s.companies[company]
	if v.combined() > 0 {
		s.leaders.Remove(company)
	}

	if isBuy {
		s.totalBuy += qty
		v.buy += qty
	} else {
		s.totalSell += qty
		v.sell += qty
	}
	s.companies[company] = v

	s.leaders.Insert(company, int64(v.combined()))
}

// Remove folds a departing order out of the snapshot; the exact inverse
// of Add.
func (s *SecuritySnapshot) Remove(order core.Order) {
	company := order.Company()
	qty := uint64(order.Quantity())
	isBuy := order.Side() == core.Buy

	v := s.companies[company]
	if v.combined() > 0 {
		s.leaders.Remove(company)
	}

	if isBuy {
		s.totalBuy -= qty
		v.buy -= qty
	} else {
		s.totalSell -= qty
		v.sell -= qty
	}

	if v.combined() > 0 {
		s.companies[company] = v
		s.leaders.Insert(company, int64(v.combined()))
	} else {
		delete(s.companies, company)
	}
}

// IsEmpty reports whether the snapshot currently backs any live order.
func (s *SecuritySnapshot) IsEmpty() bool {
	return s.totalBuy == 0 && s.totalSell == 0
}

// MatchingSize returns the O(1) closed-form matching size for this
// security's current snapshot, per spec.md section 4.5.
func (s *SecuritySnapshot) MatchingSize() uint32 {
	return core.MatchingSize(s.totalBuy, s.totalSell, uint64(s.leaders.Max()))
}

// TotalBuy returns the current total live buy quantity.
func (s *SecuritySnapshot) TotalBuy() uint64 { return s.totalBuy }

// TotalSell returns the current total live sell quantity.
func (s *SecuritySnapshot) TotalSell() uint64 { return s.totalSell }

// CompanyVolume returns the (buy, sell) sum for company, and whether the
// company currently has any live order in this security.
func (s *SecuritySnapshot) CompanyVolume(company string) (buy, sell uint64, ok bool) {
	v, ok := s.companies[company]
	return v.buy, v.sell, ok
}
