package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/vendorlink/supplier-dashboard/internal/formatter"
	"github.com/vendorlink/supplier-dashboard/internal/odata"
)

// monthFields maps each calendar month to the raw field carrying its spend.
// The series is always built from this full table, so the output has exactly
// 12 entries no matter which monthly fields the row actually carries.
var monthFields = [12]struct {
	Month string
	Field string
}{
	{"Jan", "PoValue_Jan"},
	{"Feb", "PoValue_Feb"},
	{"Mar", "PoValue_Mar"},
	{"Apr", "PoValue_Apr"},
	{"May", "PoValue_May"},
	{"Jun", "PoValue_Jun"},
	{"Jul", "PoValue_Jul"},
	{"Aug", "PoValue_Aug"},
	{"Sep", "PoValue_Sep"},
	{"Oct", "PoValue_Oct"},
	{"Nov", "PoValue_Nov"},
	{"Dec", "PoValue_Dec"},
}

// trendReference is the per-rank trend placeholder for the top-products
// list. The values are positional, not derived from the row data.
var trendReference = [5]float64{15.3, -8.1, 22.7, 5.4, 11.2}

// maxTopProducts caps the ranked product list.
const maxTopProducts = 5

// Engine converts raw entity rows into view models. The clock is injected
// because the current-month tile reflects the wall-clock month at transform
// time.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a transformation engine using the system clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates a transformation engine with a fixed clock.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// BusinessTrend builds the monthly spend trend from the vendor-aggregate
// row. Only the first row is consulted; a missing or empty input yields the
// zero-filled series.
func (e *Engine) BusinessTrend(rows []odata.Row) *BusinessTrend {
	var row odata.Row
	if len(rows) > 0 {
		row = rows[0]
	}

	series := make([]MonthlySpend, len(monthFields))
	for i, m := range monthFields {
		series[i] = MonthlySpend{Month: m.Month, Spend: row.Float(m.Field)}
	}

	currentMonth := int(e.now().Month()) - 1
	total := row.Float("PoValue_Y2D")
	currentValue := row.Float(monthFields[currentMonth].Field)
	currency := currencyOf(row)
	return &BusinessTrend{
		MonthlySeries:         series,
		TotalValue:            total,
		CurrentMonthValue:     currentValue,
		Currency:              currency,
		FormattedTotal:        formatter.Currency(total, currency),
		FormattedCurrentMonth: formatter.Currency(currentValue, currency),
	}
}

// TopProducts ranks the first five rows in service-provided order. The trend
// value comes from the fixed reference sequence by rank position.
func (e *Engine) TopProducts(rows []odata.Row) []TopProduct {
	if len(rows) > maxTopProducts {
		rows = rows[:maxTopProducts]
	}

	products := make([]TopProduct, 0, len(rows))
	for i, row := range rows {
		name := row.String("MaterialName")
		if name == "" {
			name = "Unknown Material"
		}
		quantity := row.Int("TotalOrderedQuantity")
		spend := row.Float("TotalAmount")
		currency := currencyOf(row)
		trend := trendReference[i]
		products = append(products, TopProduct{
			Rank:              i + 1,
			Name:              name,
			Quantity:          quantity,
			TotalSpend:        spend,
			Currency:          currency,
			Trend:             trend,
			FormattedSpend:    formatter.Currency(spend, currency),
			FormattedQuantity: formatter.Quantity(float64(quantity), formatter.Number(float64(quantity))),
			FormattedTrend:    formatter.Trend(trend),
			TrendState:        formatter.TrendState(trend),
		})
	}
	return products
}

// OpenOrders maps every open purchase order row one to one.
func (e *Engine) OpenOrders(rows []odata.Row) []OpenOrder {
	orders := make([]OpenOrder, 0, len(rows))
	for _, row := range rows {
		poNo := row.String("PoNo")
		value := row.Float("TotalAmount")
		currency := currencyOf(row)
		orders = append(orders, OpenOrder{
			ID:             poNo,
			Description:    "Purchase Order " + poNo,
			Value:          value,
			Status:         "Open",
			Currency:       currency,
			FormattedValue: formatter.Currency(value, currency),
		})
	}
	return orders
}

// Commitments classifies each contract by its remaining days and formats
// the validity period from the raw date fields.
func (e *Engine) Commitments(rows []odata.Row) []Commitment {
	commitments := make([]Commitment, 0, len(rows))
	for _, row := range rows {
		days := row.Int("DaysPendingToExpire")
		if _, ok := row["DaysPendingToExpire"]; !ok {
			// Older service versions omit the day count; derive it from
			// the validity end date instead.
			days = formatter.DaysUntil(row.String("ValidityEndDate"), e.now())
		}
		cls := ClassifyExpiry(days)

		daysToExpiry := "Expired"
		if days > 0 {
			daysToExpiry = fmt.Sprintf("%d days", days)
		}

		quantity := row.String("TotalOrderedQuantity")
		if quantity == "" {
			quantity = "0"
		}
		if unit := row.String("TotalOrderedQuantityUnit"); unit != "" {
			quantity += " " + unit
		}

		validity := fmt.Sprintf("%s – %s",
			formatter.Date(row.String("ValidityStartDate")),
			formatter.Date(row.String("ValidityEndDate")))

		commitments = append(commitments, Commitment{
			ContractID:           row.String("PurchaseContract"),
			ProductName:          "Framework Agreement",
			ValidityPeriod:       validity,
			TotalOrderedQuantity: quantity,
			DaysToExpiry:         daysToExpiry,
			ExpiryState:          cls.ExpiryState,
			Status:               cls.Status,
			StatusState:          cls.StatusState,
		})
	}
	return commitments
}

// currencyOf reads the row's currency field, falling back to the default.
func currencyOf(row odata.Row) string {
	if c := strings.TrimSpace(row.String("TotalAmountCurrency")); c != "" {
		return c
	}
	return DefaultCurrency
}
