package entity

// CostEntry is one normalized billing record. Provider adapters emit entries
// with strictly positive amounts; zero-amount placeholders are only inserted
// later by the gap filler.
type CostEntry struct {
	Date     Day     `json:"date"`
	Service  string  `json:"service"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ProviderResult holds the entries returned by one successfully queried
// provider, tagged with the provider's display name.
type ProviderResult struct {
	Name    string
	Entries []CostEntry
}

// Report is the assembled data behind one rendered cost report, used by the
// export adapters.
type Report struct {
	Title     string      `json:"title"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Profile   string      `json:"profile,omitempty"`
	Rate      float64     `json:"exchange_rate,omitempty"`
	Mode      DisplayMode `json:"-"`
	Entries   []CostEntry `json:"entries"`
	TotalUSD  float64     `json:"total_usd"`
	TotalJPY  int64       `json:"total_jpy"`
}
