package model

import "github.com/shopspring/decimal"

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type Dashboard struct {
	Clients          int64           `json:"clients"`
	Sites            int64           `json:"sites"`
	Contractors      int64           `json:"contractors"`
	OpenTasks        int64           `json:"open_tasks"`
	Projects         []StatusCount   `json:"projects"`
	Quotations       []StatusCount   `json:"quotations"`
	AcceptedValue    decimal.Decimal `json:"accepted_value"`
	OutstandingValue decimal.Decimal `json:"outstanding_value"`
}
