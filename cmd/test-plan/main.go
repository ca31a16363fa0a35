// Command test-plan submits a planning request to a running service and
// prints the resulting plan. Useful as an end-to-end smoke check.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultRequest = `{
  "user_data": {
    "player_id": 5050,
    "first_name": "Avery",
    "last_name": "Player",
    "birth_date": "2009-01-10",
    "gender": "M",
    "city": "Boston",
    "state": "MA"
  },
  "tournaments": [
    {"id": 1, "name": "Spring Gold Classic", "start_date": "2026-09-15", "total_entrants": 60},
    {"id": 2, "name": "Summer Silver Open", "start_date": "2026-07-04", "total_entrants": 40},
    {"id": 3, "name": "Regional Championship", "start_date": "2026-11-20", "total_entrants": 90}
  ],
  "goal": {
    "type": "ranking",
    "description": "Reach top 20 this season, within 100 miles",
    "timeframe": "6_months",
    "target_ranking": 20
  }
}`

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		file    = flag.String("file", "", "Request fixture file (default: built-in request)")
		timeout = flag.Duration("timeout", 2*time.Minute, "HTTP request timeout")
	)
	flag.Parse()

	body := []byte(defaultRequest)
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fail("read fixture: " + err.Error())
		}
		body = data
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *baseURL+"/recommendations", bytes.NewReader(body))
	if err != nil {
		fail("build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fail("request failed: " + err.Error())
	}
	defer resp.Body.Close()

	var pretty bytes.Buffer
	dec := json.NewDecoder(resp.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		fail("decode response: " + err.Error())
	}
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fail("indent response: " + err.Error())
	}

	fmt.Printf("status: %s (%.1fs)\n", resp.Status, time.Since(start).Seconds())
	fmt.Println(pretty.String())

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func fail(msg string) {
	os.Stderr.WriteString(msg + "\n")
	os.Exit(1)
}
