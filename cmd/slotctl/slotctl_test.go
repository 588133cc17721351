package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func sampleLogs() []models.PaymentLog {
	paymentID := "pay_1"
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	paidAt := created.Add(2 * time.Minute)
	return []models.PaymentLog{
		{SellerID: "S1", RazorpayOrderID: "order_1", RazorpayPaymentID: &paymentID, Amount: 49900, SlotsAdded: 5,
			Status: models.PaymentStatusPaid, PaidAt: &paidAt, CreatedAt: created},
		{SellerID: "S2", RazorpayOrderID: "order_2", Amount: 99900, SlotsAdded: 12,
			Status: models.PaymentStatusCreated, CreatedAt: created.Add(time.Hour)},
	}
}

func TestSignCmd(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	want := payments.Sign(body, "whsec_cli")

	t.Run("stdin", func(t *testing.T) {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetIn(bytes.NewReader(body))
		cmd.SetArgs([]string{"sign", "--secret", "whsec_cli"})

		require.NoError(t, cmd.Execute())
		assert.Equal(t, want+"\n", out.String())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "body.json")
		require.NoError(t, os.WriteFile(path, body, 0o600))

		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"sign", "-s", "whsec_cli", path})

		require.NoError(t, cmd.Execute())
		assert.Equal(t, want, strings.TrimSpace(out.String()))
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("RAZORPAY_WEBHOOK_SECRET", "")
		cmd := newRootCmd()
		cmd.SetIn(bytes.NewReader(body))
		cmd.SetArgs([]string{"sign"})
		require.Error(t, cmd.Execute())
	})
}

func TestParseSince(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "24h", want: now.Add(-24 * time.Hour)},
		{in: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "last week", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSince(tt.in, now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestSummarize(t *testing.T) {
	s := summarize(sampleLogs())
	assert.Equal(t, paymentSummary{Orders: 2, Paid: 1, Pending: 1, PaidAmount: 49900, SlotsIssued: 5}, s)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeXLSX(&buf, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), sampleLogs()))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Payment Logs", sheet.Name)

	byOrder := map[string][]string{}
	for _, r := range sheet.Rows {
		if r == nil || len(r.Cells) == 0 {
			continue
		}
		var values []string
		for _, c := range r.Cells {
			values = append(values, c.Value)
		}
		byOrder[values[0]] = values
	}

	require.Contains(t, byOrder, "Order ID")
	require.Contains(t, byOrder, "order_1")
	assert.Equal(t, "49900", byOrder["order_1"][2])
	assert.Equal(t, "pay_1", byOrder["order_1"][5])
	require.Contains(t, byOrder, "order_2")
	assert.Equal(t, "created", byOrder["order_2"][4])
	require.Contains(t, byOrder, "Slots Issued")
	assert.Equal(t, "5", byOrder["Slots Issued"][1])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePDF(&buf, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), sampleLogs()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPrintPending(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPending(&out, sampleLogs()[1:]))
	assert.Contains(t, out.String(), "ORDER ID")
	assert.Contains(t, out.String(), "order_2")
	assert.Contains(t, out.String(), "1 pending orders")

	out.Reset()
	require.NoError(t, printPending(&out, nil))
	assert.Equal(t, "No pending orders\n", out.String())
}

func TestAnalyzeLogs(t *testing.T) {
	info := strings.Join([]string{
		"INFO: 2024/03/01 10:00:00 order_service.go:98: Order created: order_1 seller=S1 pack=pack_5 amount=49900 slots=5",
		"INFO: 2024/03/01 10:00:01 order_service.go:98: Order created: order_2 seller=S2 pack=pack_12 amount=99900 slots=12",
		"INFO: 2024/03/01 10:01:00 webhook_reconciler.go:160: Webhook applied: order order_1 credited 5 slots to seller S1",
		"INFO: 2024/03/01 10:01:05 webhook_reconciler.go:125: Webhook duplicate: order order_1 already paid",
		"INFO: 2024/03/01 10:02:00 webhook_reconciler.go:98: Webhook ignored: event payment.failed",
		"INFO: 2024/03/01 10:03:00 webhook_reconciler.go:118: Webhook for unknown order order_x (payment pay_x)",
		"INFO: 2024/03/01 10:30:00 stale_orders.go:50: Stale order: order_2 seller=S2 amount=99900 slots=12 created_at=2024-02-28T10:00:00Z",
	}, "\n")
	errs := strings.Join([]string{
		"ERROR: 2024/03/01 10:04:00 webhook_reconciler.go:90: Webhook signature mismatch (120 bytes)",
		"ERROR: 2024/03/01 10:05:00 webhook_reconciler.go:95: Malformed webhook body: malformed webhook event: unexpected end of JSON input",
		"ERROR: 2024/03/01 10:06:00 order_service.go:92: Orphaned Razorpay order order_3 for seller S3: failed to persist payment log: timeout",
	}, "\n")

	stats := newLogStats()
	require.NoError(t, analyzeInfoLogs(strings.NewReader(info), stats))
	require.NoError(t, analyzeErrorLogs(strings.NewReader(errs), stats))

	assert.Equal(t, 2, stats.OrdersCreated)
	assert.Equal(t, 1, stats.WebhooksApplied)
	assert.Equal(t, 1, stats.WebhooksDuplicate)
	assert.Equal(t, 1, stats.WebhooksIgnored)
	assert.Equal(t, 1, stats.WebhooksUnknown)
	assert.Equal(t, 1, stats.StaleOrders)
	assert.Equal(t, 3, stats.TotalErrors)
	assert.Equal(t, 1, stats.SignatureFailures)
	assert.Equal(t, 1, stats.WebhooksMalformed)
	assert.Equal(t, 1, stats.OrphanedOrders)
	assert.Equal(t, map[string]int{"S1": 5}, stats.SlotsBySeller)
	assert.Equal(t, 1, stats.ErrorPatterns["Malformed webhook body"])
	assert.Equal(t, 1, stats.ErrorPatterns["Webhook signature mismatch (120 bytes)"])

	var out bytes.Buffer
	printReport(&out, "2024-03-01", stats)
	assert.Contains(t, out.String(), "Applied: 1")
	assert.Contains(t, out.String(), "S1: 5 slots")
}
