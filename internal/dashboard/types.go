package dashboard

// DefaultCurrency is assumed when a row carries no currency field.
const DefaultCurrency = "INR"

// MonthlySpend is one point of the monthly spend trend series.
type MonthlySpend struct {
	Month string  `json:"month"`
	Spend float64 `json:"spend"`
}

// BusinessTrend is the display-ready business value trend: a full calendar
// year of monthly spend plus the year-to-date and current-month tiles. The
// series always has exactly 12 entries in calendar order.
type BusinessTrend struct {
	MonthlySeries         []MonthlySpend `json:"monthlySpendTrend"`
	TotalValue            float64        `json:"totalPOValue"`
	CurrentMonthValue     float64        `json:"currentMonthValue"`
	Currency              string         `json:"currency"`
	FormattedTotal        string         `json:"formattedTotal"`
	FormattedCurrentMonth string         `json:"formattedCurrentMonth"`
}

// TopProduct is one ranked entry of the top-products-by-spend list.
type TopProduct struct {
	Rank              int     `json:"rank"`
	Name              string  `json:"name"`
	Quantity          int     `json:"quantity"`
	TotalSpend        float64 `json:"totalSpend"`
	Currency          string  `json:"currency"`
	Trend             float64 `json:"trend"`
	FormattedSpend    string  `json:"formattedSpend"`
	FormattedQuantity string  `json:"formattedQuantity"`
	FormattedTrend    string  `json:"formattedTrend"`
	TrendState        string  `json:"trendState"`
}

// OpenOrder is one open purchase order.
type OpenOrder struct {
	ID             string  `json:"id"`
	Description    string  `json:"description"`
	Value          float64 `json:"value"`
	Status         string  `json:"status"`
	Currency       string  `json:"currency"`
	FormattedValue string  `json:"formattedValue"`
}

// Commitment is one contract commitment with its expiry classification.
type Commitment struct {
	ContractID           string `json:"contractNo"`
	ProductName          string `json:"productName"`
	ValidityPeriod       string `json:"validityPeriod"`
	TotalOrderedQuantity string `json:"totalOrderedQty"`
	DaysToExpiry         string `json:"daysToExpiry"`
	ExpiryState          string `json:"expiryState"`
	Status               string `json:"status"`
	StatusState          string `json:"statusState"`
}

// Snapshot bundles the four view models produced by one aggregation. A
// snapshot is created wholesale and replaces any prior one; the rendering
// layer treats it as read-only.
type Snapshot struct {
	BusinessTrend *BusinessTrend `json:"businessData"`
	TopProducts   []TopProduct   `json:"products"`
	OpenOrders    []OpenOrder    `json:"purchaseOrders"`
	Commitments   []Commitment   `json:"contracts"`
}

// EntityStatus reports the per-entity-set outcome of a settled aggregation.
type EntityStatus struct {
	EntitySet string `json:"entitySet"`
	Loaded    bool   `json:"loaded"`
	Error     string `json:"error,omitempty"`
}

// SettledSnapshot is the partial-availability alternative to Snapshot: every
// entity set reports its own outcome and failed sets leave their view model
// in the empty shape.
type SettledSnapshot struct {
	Snapshot
	Statuses []EntityStatus `json:"statuses"`
	Complete bool           `json:"complete"`
}
