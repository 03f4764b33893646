package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const callerHeader = "X-Caller-Address"

type proposeRequest struct {
	CreditedPerson string `json:"creditedPerson"`
	Description    string `json:"description"`
	Amount         uint64 `json:"amount"`
}

type decideRequest struct {
	ID uint64 `json:"id"`
}

type idResponse struct {
	ID uint64 `json:"id"`
}

type creditsResponse struct {
	Address string `json:"address"`
	Credits uint64 `json:"credits"`
}

// proposal is one accepted proposal, kept for the verify phase
type proposal struct {
	ID          uint64
	Beneficiary string
	Amount      uint64
}

// phaseStats aggregates latencies and failures for one phase
type phaseStats struct {
	mu        sync.Mutex
	name      string
	ok        int
	failed    int
	latencies []time.Duration
	errors    map[string]int
	elapsed   time.Duration
}

func newPhaseStats(name string, n int) *phaseStats {
	return &phaseStats{name: name, latencies: make([]time.Duration, 0, n), errors: make(map[string]int)}
}

func (s *phaseStats) record(latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latencies = append(s.latencies, latency)
	if err != nil {
		s.failed++
		s.errors[err.Error()]++
		return
	}
	s.ok++
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	total := flag.Int("n", 100, "Number of proposals to submit")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the relay")
	authority := flag.String("authority", "0x9999999999999999999999999999999999999999", "Authority address used for the verify phase")
	sellersStr := flag.String("sellers", "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa,0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "Comma-separated seller addresses")
	beneficiariesStr := flag.String("beneficiaries", "0xcccccccccccccccccccccccccccccccccccccccc,0xdddddddddddddddddddddddddddddddddddddddd", "Comma-separated beneficiary addresses")
	delayMs := flag.Int("delay", 0, "Delay between requests per worker in milliseconds")
	flag.Parse()

	sellers := splitList(*sellersStr)
	beneficiaries := splitList(*beneficiariesStr)
	if len(sellers) == 0 || len(beneficiaries) == 0 {
		fmt.Println("at least one seller and one beneficiary are required")
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}

	before, err := readCredits(client, *baseURL, beneficiaries)
	if err != nil {
		fmt.Printf("reading initial credits: %v\n", err)
		return
	}

	fmt.Printf("Proposing %d transactions with %d workers\n", *total, *concurrency)
	proposeStats := newPhaseStats("propose", *total)
	var (
		mu       sync.Mutex
		accepted []proposal
	)
	runPhase(*concurrency, *total, proposeStats, func(job int) error {
		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
		p := proposeRequest{
			CreditedPerson: beneficiaries[rand.Intn(len(beneficiaries))],
			Description:    "load " + uuid.NewString(),
			Amount:         uint64(rand.Intn(100) + 1),
		}
		var res idResponse
		if err := post(client, *baseURL+"/api/propose", sellers[job%len(sellers)], p, http.StatusCreated, &res); err != nil {
			return err
		}
		mu.Lock()
		accepted = append(accepted, proposal{ID: res.ID, Beneficiary: strings.ToLower(p.CreditedPerson), Amount: p.Amount})
		mu.Unlock()
		return nil
	})

	fmt.Printf("Verifying %d accepted proposals as %s\n", len(accepted), *authority)
	verifyStats := newPhaseStats("verify", len(accepted))
	expected := make(map[string]uint64)
	runPhase(*concurrency, len(accepted), verifyStats, func(job int) error {
		p := accepted[job]
		if err := post(client, *baseURL+"/api/verify", *authority, decideRequest{ID: p.ID}, http.StatusOK, nil); err != nil {
			return err
		}
		mu.Lock()
		expected[p.Beneficiary] += p.Amount
		mu.Unlock()
		return nil
	})

	after, err := readCredits(client, *baseURL, beneficiaries)
	if err != nil {
		fmt.Printf("reading final credits: %v\n", err)
		return
	}

	printStats(proposeStats)
	printStats(verifyStats)

	fmt.Println("\n----------------- CREDIT CHECK -----------------")
	consistent := true
	for _, b := range beneficiaries {
		key := strings.ToLower(b)
		gained := after[key] - before[key]
		status := "ok"
		if gained != expected[key] {
			status = "MISMATCH"
			consistent = false
		}
		fmt.Printf("%s  gained %d, verified %d  %s\n", key, gained, expected[key], status)
	}
	if consistent {
		fmt.Println("Credits match the verified proposals")
	} else {
		fmt.Println("Credits do not match the verified proposals")
	}
}

// runPhase fans n jobs out to c workers and records each outcome in stats
func runPhase(c, n int, stats *phaseStats, do func(job int) error) {
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < c; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				began := time.Now()
				err := do(job)
				stats.record(time.Since(began), err)
			}
		}()
	}
	wg.Wait()
	stats.elapsed = time.Since(start)
}

func post(client *http.Client, url, caller string, body any, want int, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(callerHeader, caller)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func readCredits(client *http.Client, baseURL string, people []string) (map[string]uint64, error) {
	credits := make(map[string]uint64, len(people))
	for _, person := range people {
		resp, err := client.Get(baseURL + "/api/credits/" + person)
		if err != nil {
			return nil, err
		}
		var res creditsResponse
		err = json.NewDecoder(resp.Body).Decode(&res)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		credits[strings.ToLower(person)] = res.Credits
	}
	return credits, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printStats(s *phaseStats) {
	total := s.ok + s.failed
	fmt.Printf("\n================= %s =================\n", strings.ToUpper(s.name))
	if total == 0 {
		fmt.Println("No requests")
		return
	}

	sorted := make([]time.Duration, len(s.latencies))
	copy(sorted, s.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, l := range sorted {
		sum += l
	}

	fmt.Printf("Requests:   %d (%d ok, %d failed)\n", total, s.ok, s.failed)
	fmt.Printf("Elapsed:    %.2f seconds\n", s.elapsed.Seconds())
	fmt.Printf("Throughput: %.2f req/s\n", float64(total)/s.elapsed.Seconds())
	fmt.Printf("Average:    %v\n", sum/time.Duration(len(sorted)))
	fmt.Printf("P50:        %v\n", sorted[len(sorted)*50/100])
	fmt.Printf("P95:        %v\n", sorted[len(sorted)*95/100])
	fmt.Printf("P99:        %v\n", sorted[len(sorted)*99/100])

	for msg, count := range s.errors {
		fmt.Printf("  %-40s: %d\n", msg, count)
	}
}
