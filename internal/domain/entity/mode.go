package entity

// DisplayMode selects how the report table treats entry currencies.
type DisplayMode int

const (
	// ModeUSD renders every entry as USD and converts each row to JPY at the
	// report's exchange rate. Used for single-provider USD reports; an entry's
	// own Currency field is ignored.
	ModeUSD DisplayMode = iota
	// ModeJPY renders amounts directly as yen with no USD column and no
	// exchange rate.
	ModeJPY
	// ModeMixed honors each entry's Currency: JPY entries pass through
	// unconverted, everything else is treated as USD.
	ModeMixed
)

// Valid reports whether m is one of the three defined modes.
func (m DisplayMode) Valid() bool {
	return m == ModeUSD || m == ModeJPY || m == ModeMixed
}

func (m DisplayMode) String() string {
	switch m {
	case ModeUSD:
		return "usd"
	case ModeJPY:
		return "jpy"
	case ModeMixed:
		return "mixed"
	default:
		return "unknown"
	}
}
