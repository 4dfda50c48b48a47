package entity

// PartyComposition is the age-group breakdown of ticket buyers for one
// reservation. All counts are >= 0; the sum is the number of seats the
// party needs.
type PartyComposition struct {
	Adults   int `json:"adults"`
	Teens    int `json:"teens"`
	Children int `json:"children"`
}

func (p PartyComposition) Size() int {
	return p.Adults + p.Teens + p.Children
}

// PriceTable holds per-age-group ticket prices in integer currency
// units.
type PriceTable struct {
	Adult int64
	Teen  int64
	Child int64
}

// Total prices a party. Pure arithmetic, no rounding involved.
func (t PriceTable) Total(party PartyComposition) int64 {
	return int64(party.Adults)*t.Adult +
		int64(party.Teens)*t.Teen +
		int64(party.Children)*t.Child
}
