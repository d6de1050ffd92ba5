package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/auth"
	timeprovider "github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/time"
)

// Load test for POST /coins/transfer. Users transfer random amounts to each other;
// afterwards the sum of their balances must be unchanged.

type envelope struct {
	Result string          `json:"result"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Outcome      string
	ResponseTime time.Duration
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests int
	Outcomes      map[string]int
	ResponseTimes []time.Duration
	TotalTime     time.Duration
	Lock          sync.Mutex
}

type client struct {
	http    *http.Client
	baseURL string
	tokens  map[string]string
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of transfers to make")
	usersStr := flag.String("u", "", "Comma-separated list of at least two seeded user ids")
	baseURL := flag.String("url", "http://localhost:8080/api/v1", "Base URL for the API")
	secret := flag.String("secret", os.Getenv("COINS_JWT_SECRET"), "Token signing secret")
	issuer := flag.String("issuer", os.Getenv("COINS_JWT_ISSUER"), "Token issuer")
	maxAmount := flag.Int("max", 10, "Largest amount of a single transfer")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds")
	flag.Parse()

	var users []string
	for _, id := range strings.Split(*usersStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			users = append(users, id)
		}
	}
	if len(users) < 2 || *secret == "" || *maxAmount < 1 {
		fmt.Println("need -u with at least two user ids, -secret and a positive -max")
		os.Exit(2)
	}

	tokens := auth.NewTokenManager(*secret, *issuer, time.Hour, timeprovider.NewRealTimeProvider())
	c := &client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(*baseURL, "/"),
		tokens:  make(map[string]string, len(users)),
	}
	for _, id := range users {
		token, err := tokens.Generate(id, entity.RoleJobSeeker, nil)
		if err != nil {
			fmt.Println("failed to sign token:", err)
			os.Exit(1)
		}
		c.tokens[id] = token
	}

	before, err := c.totalBalance(users)
	if err != nil {
		fmt.Println("failed to read balances:", err)
		os.Exit(1)
	}

	fmt.Printf("Load testing transfers across %d users holding %d coins\n", len(users), before)
	fmt.Printf("Concurrency: %d goroutines, total requests: %d\n", *concurrency, *totalRequests)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		Outcomes:      make(map[string]int),
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
	}

	jobs := make(chan struct{}, *totalRequests)
	for range *totalRequests {
		jobs <- struct{}{}
	}
	close(jobs)

	startTime := time.Now()
	var wg sync.WaitGroup
	for range *concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if *delayMs > 0 {
					time.Sleep(time.Duration(*delayMs) * time.Millisecond)
				}
				result := c.randomTransfer(users, *maxAmount)

				stats.Lock.Lock()
				stats.Outcomes[result.Outcome]++
				stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
				stats.Lock.Unlock()
			}
		}()
	}
	wg.Wait()
	stats.TotalTime = time.Since(startTime)

	after, err := c.totalBalance(users)
	if err != nil {
		fmt.Println("failed to read balances:", err)
		os.Exit(1)
	}

	printResults(stats)

	fmt.Println("\n================= CONSERVATION =================")
	if before != after {
		fmt.Printf("FAIL: total changed from %d to %d\n", before, after)
		os.Exit(1)
	}
	fmt.Printf("OK: total stayed at %d\n", after)
}

// randomTransfer sends one transfer between two distinct random users
func (c *client) randomTransfer(users []string, maxAmount int) TestResult {
	from := users[rand.Intn(len(users))]
	to := from
	for to == from {
		to = users[rand.Intn(len(users))]
	}

	body, _ := json.Marshal(map[string]any{
		"recipientId": to,
		"amount":      rand.Intn(maxAmount) + 1,
		"message":     "load test",
	})

	startTime := time.Now()
	status, env, err := c.do(http.MethodPost, "/coins/transfer", from, body)
	result := TestResult{ResponseTime: time.Since(startTime)}

	switch {
	case err != nil:
		result.Outcome = "transport error"
	case status == http.StatusOK:
		result.Outcome = "transferred"
	case status == http.StatusBadRequest && env.Msg == "insufficient funds":
		result.Outcome = "insufficient funds"
	default:
		result.Outcome = fmt.Sprintf("HTTP %d: %s", status, env.Msg)
	}
	return result
}

func (c *client) totalBalance(users []string) (int64, error) {
	var total int64
	for _, id := range users {
		status, env, err := c.do(http.MethodGet, "/users/me/coins", id, nil)
		if err != nil {
			return 0, err
		}
		if status != http.StatusOK {
			return 0, fmt.Errorf("balance of %s: HTTP %d: %s", id, status, env.Msg)
		}

		var balance struct {
			Coins int64 `json:"coins"`
		}
		if err := json.Unmarshal(env.Data, &balance); err != nil {
			return 0, err
		}
		total += balance.Coins
	}
	return total, nil
}

func (c *client) do(method, path, caller string, body []byte) (int, envelope, error) {
	var env envelope

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, env, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.tokens[caller])

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, env, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp.StatusCode, env, fmt.Errorf("undecodable response: %w", err)
	}
	return resp.StatusCode, env, nil
}

func printResults(stats *TestStats) {
	tps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var p50, p90, p99, total time.Duration
	if n := len(stats.ResponseTimes); n > 0 {
		sorted := slices.Clone(stats.ResponseTimes)
		slices.Sort(sorted)
		p50, p90, p99 = sorted[n*50/100], sorted[n*90/100], sorted[n*99/100]
		for _, d := range sorted {
			total += d
		}
		total /= time.Duration(n)
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:          %.2f requests/second\n", tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", total)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- OUTCOMES -----------------")
	for outcome, count := range stats.Outcomes {
		fmt.Printf("%-40s: %d (%.1f%%)\n", outcome, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}
}
