package models

// GenerateRequest is the body of POST /trip/generate. Either Prompt is set (raw proxy)
// or the structured trip fields are.
type GenerateRequest struct {
	Prompt    string     `json:"prompt"`
	From      string     `json:"from" validate:"required_without=Prompt"`
	To        string     `json:"to" validate:"required_without=Prompt"`
	StartDate Date       `json:"startDate"`
	EndDate   Date       `json:"endDate"`
	Mode      TravelMode `json:"mode" validate:"required_without=Prompt,omitempty,oneof=Car Train Bus Flight"`
}

// ItineraryPlan is the JSON object the LLM is instructed to return.
type ItineraryPlan struct {
	Summary       string         `json:"summary"`
	Itinerary     []DayPlan      `json:"itinerary"`
	Expenses      []Expense      `json:"expenses"`
	Coordinates   *Coordinates   `json:"coordinates,omitempty"`
	TransportHubs *TransportHubs `json:"transportHubs,omitempty"`
	TotalCost     float64        `json:"totalCost"`
	TotalDays     int            `json:"totalDays"`
}

type GenerateResponse struct {
	Text string         `json:"text"`
	Plan *ItineraryPlan `json:"plan,omitempty"`
}
