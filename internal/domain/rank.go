package domain

// Rank is the loyalty tier derived from a user's confirmed entry count.
// Discount is informational only; nothing in the API charges money.
type Rank struct {
	Rank     int    `json:"rank"`
	Title    string `json:"title"`
	Discount int    `json:"discount"`
}

// RankForEntries maps a non-negative entry count to its tier. The steps are
// fixed; the result never decreases as entries grow.
func RankForEntries(entries int) Rank {
	switch {
	case entries >= 500:
		return Rank{Rank: 6, Title: "Grandmaster", Discount: 90}
	case entries >= 100:
		return Rank{Rank: 5, Title: "Legend", Discount: 50}
	case entries >= 25:
		return Rank{Rank: 4, Title: "Diamond", Discount: 25}
	case entries >= 10:
		return Rank{Rank: 3, Title: "Gold", Discount: 10}
	case entries >= 5:
		return Rank{Rank: 2, Title: "Silver", Discount: 5}
	case entries >= 1:
		return Rank{Rank: 1, Title: "Bronze", Discount: 0}
	default:
		return Rank{Rank: 0, Title: "Newbie", Discount: 0}
	}
}
