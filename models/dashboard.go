package models

type DashboardStats struct {
	SportIDs         []int `json:"sport_ids"`
	MatchesTotal     int   `json:"matches_total"`
	MatchesFinished  int   `json:"matches_finished"`
	TicketTypesTotal int   `json:"ticket_types_total"`
	TicketsSold      int   `json:"tickets_sold"`
	CompetitorsTotal int   `json:"competitors_total"`
	StandingRows     int   `json:"standing_rows"`
}
