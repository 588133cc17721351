package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Govind-619/SlotPay/config"
	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/repository"
	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{"Order ID", "Seller", "Amount (paise)", "Slots", "Status", "Payment ID", "Created", "Paid"}

// paymentSummary totals an export
type paymentSummary struct {
	Orders      int
	Paid        int
	Pending     int
	PaidAmount  int64
	SlotsIssued int
}

func summarize(logs []models.PaymentLog) paymentSummary {
	var s paymentSummary
	s.Orders = len(logs)
	for _, l := range logs {
		if l.IsPaid() {
			s.Paid++
			s.PaidAmount += l.Amount
			s.SlotsIssued += l.SlotsAdded
		} else {
			s.Pending++
		}
	}
	return s
}

func exportCmd() *cobra.Command {
	var (
		since  string
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export payment logs as an xlsx or pdf report",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseSince(since, time.Now())
			if err != nil {
				return err
			}
			if format != "xlsx" && format != "pdf" {
				return fmt.Errorf("unsupported format %q (xlsx, pdf)", format)
			}
			if out == "" {
				out = fmt.Sprintf("payment_logs_%s.%s", from.Format("20060102"), format)
			}

			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db)

			logs, err := repository.NewPaymentLogRepository(db).ListSince(cmd.Context(), from)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if format == "pdf" {
				err = writePDF(f, from, logs)
			} else {
				err = writeXLSX(f, from, logs)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d payment logs to %s\n", len(logs), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "720h", "start date (2006-01-02) or a duration back from now")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "report format (xlsx, pdf)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")

	return cmd
}

func parseSince(v string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return now.Add(-d), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q: want a date or duration", v)
	}
	return t, nil
}

func row(l models.PaymentLog) []string {
	paymentID, paidAt := "", ""
	if l.RazorpayPaymentID != nil {
		paymentID = *l.RazorpayPaymentID
	}
	if l.PaidAt != nil {
		paidAt = l.PaidAt.Format("2006-01-02 15:04")
	}
	return []string{
		l.RazorpayOrderID,
		l.SellerID,
		fmt.Sprintf("%d", l.Amount),
		fmt.Sprintf("%d", l.SlotsAdded),
		string(l.Status),
		paymentID,
		l.CreatedAt.Format("2006-01-02 15:04"),
		paidAt,
	}
}

func summaryRows(s paymentSummary) [][]string {
	return [][]string{
		{"Total Orders", fmt.Sprintf("%d", s.Orders)},
		{"Paid Orders", fmt.Sprintf("%d", s.Paid)},
		{"Pending Orders", fmt.Sprintf("%d", s.Pending)},
		{"Paid Amount (paise)", fmt.Sprintf("%d", s.PaidAmount)},
		{"Slots Issued", fmt.Sprintf("%d", s.SlotsIssued)},
	}
}

func writeXLSX(w io.Writer, from time.Time, logs []models.PaymentLog) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payment Logs")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	title := sheet.AddRow()
	title.AddCell().SetString("SLOTPAY - Payment Logs since " + from.Format("2006-01-02"))
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}
	for _, l := range logs {
		r := sheet.AddRow()
		for i, v := range row(l) {
			if i == 2 {
				r.AddCell().SetInt(int(l.Amount))
				continue
			}
			if i == 3 {
				r.AddCell().SetInt(l.SlotsAdded)
				continue
			}
			r.AddCell().SetString(v)
		}
	}

	sheet.AddRow()
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryRow.Cells[0].SetStyle(bold)
	for _, data := range summaryRows(summarize(logs)) {
		r := sheet.AddRow()
		r.AddCell().SetString(data[0])
		r.AddCell().SetString(data[1])
	}

	return file.Write(w)
}

func writePDF(w io.Writer, from time.Time, logs []models.PaymentLog) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "SLOTPAY - Payment Logs")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Since "+from.Format("2006-01-02"))
	pdf.Ln(10)

	colWidths := []float64{45, 35, 30, 15, 20, 45, 32, 32}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range exportHeaders {
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, l := range logs {
		for i, v := range row(l) {
			align := "L"
			if i == 2 || i == 3 {
				align = "R"
			}
			pdf.CellFormat(colWidths[i], 8, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 9, "Summary", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, data := range summaryRows(summarize(logs)) {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
