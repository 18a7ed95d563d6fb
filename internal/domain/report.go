package domain

type RevenueRow struct {
	Airline      string `json:"airline"`
	RevenueCents int64  `json:"revenue_cents"`
}

type SummaryItem struct {
	Label     string `json:"label"`
	Value     int64  `json:"value"`
	Indicator string `json:"indicator"`
	Datatype  string `json:"datatype"`
}

type ChartDataset struct {
	Name   string  `json:"name"`
	Values []int64 `json:"values"`
}

type Chart struct {
	Type     string         `json:"type"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type RevenueReport struct {
	Rows    []RevenueRow  `json:"rows"`
	Total   int64         `json:"total_cents"`
	Summary []SummaryItem `json:"summary"`
	Chart   Chart         `json:"chart"`
}

// NewRevenueReport adds the total, summary and donut chart to the rows.
func NewRevenueReport(rows []RevenueRow) RevenueReport {
	report := RevenueReport{
		Rows:  rows,
		Chart: Chart{Type: "donut", Labels: make([]string, 0, len(rows))},
	}
	values := make([]int64, 0, len(rows))
	for _, r := range rows {
		report.Total += r.RevenueCents
		report.Chart.Labels = append(report.Chart.Labels, r.Airline)
		values = append(values, r.RevenueCents)
	}
	report.Chart.Datasets = []ChartDataset{{Name: "Revenues", Values: values}}

	indicator := "Red"
	if report.Total > 0 {
		indicator = "Green"
	}
	report.Summary = []SummaryItem{{Label: "Total Revenue", Value: report.Total, Indicator: indicator, Datatype: "Currency"}}
	return report
}

type VacancyRow struct {
	Airport     string  `json:"airport"`
	Rooms       int     `json:"rooms"`
	Occupied    int     `json:"occupied"`
	Reserved    int     `json:"reserved"`
	Maintenance int     `json:"maintenance"`
	Available   int     `json:"available"`
	VacancyRate float64 `json:"vacancy_rate"`
}

// ComputeVacancyRate sets the share of available rooms, 0 for an airport without rooms.
func (v *VacancyRow) ComputeVacancyRate() {
	if v.Rooms == 0 {
		v.VacancyRate = 0
		return
	}
	v.VacancyRate = float64(v.Available) / float64(v.Rooms)
}

type ShopRoom struct {
	Room    string `json:"room"`
	Airport string `json:"airport"`
}

type ShopListing struct {
	Name     string     `json:"name"`
	ShopType string     `json:"shop_type"`
	Link     string     `json:"link"`
	Rooms    []ShopRoom `json:"rooms"`
}

// AirportShopsPage is the context of the public airport shops page.
type AirportShopsPage struct {
	Shops []ShopListing `json:"shops"`
}
