package models

// ObservationPayload is one line of an ingest batch, before validation and
// date parsing turn it into an Observation.
type ObservationPayload struct {
	PlayerID   string  `json:"player_id" validate:"required"`
	Metric     string  `json:"metric" validate:"required"`
	OpponentID string  `json:"opponent_id"`
	GameDate   string  `json:"game_date" validate:"required"`
	Value      float64 `json:"value"`
}
