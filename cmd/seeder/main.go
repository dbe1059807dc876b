// Seeder posts a deterministic sample game log to a locally running API so
// the line endpoints have data to work with during development.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const apiURL = "http://localhost:8080/api/v1/ingest/observations"

type observation struct {
	PlayerID   string  `json:"player_id"`
	Metric     string  `json:"metric"`
	OpponentID string  `json:"opponent_id"`
	GameDate   string  `json:"game_date"`
	Value      float64 `json:"value"`
}

func main() {
	points := []float64{20, 22, 25, 24, 26, 28, 30, 29, 31, 33}
	opponents := []string{"BOS", "MIA", "BOS", "NYK", "MIA", "BOS", "PHI", "NYK", "BOS", "MIA"}

	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, value := range points {
		obs := observation{
			PlayerID:   "player-23",
			Metric:     "points",
			OpponentID: opponents[i],
			GameDate:   start.AddDate(0, 0, i*2).Format("2006-01-02"),
			Value:      value,
		}
		if err := enc.Encode(obs); err != nil {
			log.Fatalf("encode observation: %v", err)
		}
	}

	resp, err := http.Post(apiURL, "application/json", &buf)
	if err != nil {
		log.Fatalf("post observations: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("status=%d body=%s\n", resp.StatusCode, body)
}
