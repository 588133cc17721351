package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// LogStats summarises one day of service logs
type LogStats struct {
	TotalErrors       int
	OrdersCreated     int
	OrphanedOrders    int
	WebhooksApplied   int
	WebhooksDuplicate int
	WebhooksIgnored   int
	WebhooksUnknown   int
	WebhooksMalformed int
	SignatureFailures int
	StaleOrders       int
	SlotsBySeller     map[string]int
	ErrorPatterns     map[string]int
}

func newLogStats() *LogStats {
	return &LogStats{
		SlotsBySeller: make(map[string]int),
		ErrorPatterns: make(map[string]int),
	}
}

var (
	creditedRegex = regexp.MustCompile(`credited (\d+) slots to seller (\S+)`)

	// "ERROR: 2024/03/01 10:00:00 file.go:12: message"
	logPrefixRegex = regexp.MustCompile(`^[A-Z]+: \S+ \S+ \S+: `)
)

func logsCmd() *cobra.Command {
	var (
		dir  string
		date string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Summarise order and webhook activity from the service logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			stats := newLogStats()

			for name, analyze := range map[string]func(io.Reader, *LogStats) error{
				"error": analyzeErrorLogs,
				"info":  analyzeInfoLogs,
			} {
				path := filepath.Join(dir, fmt.Sprintf("%s-%s.log", name, date))
				f, err := os.Open(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error opening log file %s: %v\n", path, err)
					continue
				}
				err = analyze(f, stats)
				f.Close()
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
			}

			printReport(cmd.OutOrStdout(), date, stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "logs", "log directory")
	cmd.Flags().StringVar(&date, "date", "", "day to analyse (2006-01-02), default today")

	return cmd
}

func analyzeErrorLogs(r io.Reader, stats *LogStats) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		switch {
		case strings.Contains(line, "Orphaned Razorpay order"):
			stats.OrphanedOrders++
		case strings.Contains(line, "Webhook signature mismatch"):
			stats.SignatureFailures++
		case strings.Contains(line, "Malformed webhook body"):
			stats.WebhooksMalformed++
		}

		extractErrorPattern(line, stats)
	}
	return scanner.Err()
}

func analyzeInfoLogs(r io.Reader, stats *LogStats) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.Contains(line, "Order created:"):
			stats.OrdersCreated++
		case strings.Contains(line, "Webhook applied:"):
			stats.WebhooksApplied++
			if m := creditedRegex.FindStringSubmatch(line); m != nil {
				var n int
				fmt.Sscanf(m[1], "%d", &n)
				stats.SlotsBySeller[m[2]] += n
			}
		case strings.Contains(line, "Webhook duplicate"):
			stats.WebhooksDuplicate++
		case strings.Contains(line, "Webhook ignored:"):
			stats.WebhooksIgnored++
		case strings.Contains(line, "Webhook for unknown order"):
			stats.WebhooksUnknown++
		case strings.Contains(line, "Stale order:"):
			stats.StaleOrders++
		}
	}
	return scanner.Err()
}

// extractErrorPattern keys errors by the message text before its first colon
func extractErrorPattern(line string, stats *LogStats) {
	msg := logPrefixRegex.ReplaceAllString(line, "")
	if i := strings.Index(msg, ":"); i > 0 {
		msg = msg[:i]
	}
	if msg = strings.TrimSpace(msg); msg != "" {
		stats.ErrorPatterns[msg]++
	}
}

func printReport(w io.Writer, date string, stats *LogStats) {
	fmt.Fprintln(w, "\n=== SlotPay Log Report ===")
	fmt.Fprintln(w, "Day:", date)

	fmt.Fprintln(w, "\n1. Orders:")
	fmt.Fprintf(w, "   Created: %d\n", stats.OrdersCreated)
	fmt.Fprintf(w, "   Orphaned (no payment log): %d\n", stats.OrphanedOrders)
	fmt.Fprintf(w, "   Reported stale: %d\n", stats.StaleOrders)

	fmt.Fprintln(w, "\n2. Webhooks:")
	fmt.Fprintf(w, "   Applied: %d\n", stats.WebhooksApplied)
	fmt.Fprintf(w, "   Duplicate: %d\n", stats.WebhooksDuplicate)
	fmt.Fprintf(w, "   Ignored: %d\n", stats.WebhooksIgnored)
	fmt.Fprintf(w, "   Unknown order: %d\n", stats.WebhooksUnknown)
	fmt.Fprintf(w, "   Malformed: %d\n", stats.WebhooksMalformed)
	fmt.Fprintf(w, "   Signature failures: %d\n", stats.SignatureFailures)

	fmt.Fprintln(w, "\n3. Error Statistics:")
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)

	fmt.Fprintln(w, "\n4. Top Sellers by Slots Credited:")
	printTop(w, stats.SlotsBySeller, 5, "slots")

	fmt.Fprintln(w, "\n5. Most Common Errors:")
	printTop(w, stats.ErrorPatterns, 5, "occurrences")
}

func printTop(w io.Writer, counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}

	var entries []entry
	for k, c := range counts {
		entries = append(entries, entry{k, c})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "   %s: %d %s\n", e.key, e.count, unit)
	}
}
