// Package pdf lays out generated documents with fpdf.
package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

const (
	pageMargin = 20.0
	lineHeight = 6.0
	fontFamily = "Helvetica"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate prints a date as "10 Maret 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// Renderer implements gateways.DocumentRenderer.
type Renderer struct{}

var _ gateways.DocumentRenderer = Renderer{}

func NewRenderer() Renderer {
	return Renderer{}
}

// page wraps fpdf with the helpers the layouts share.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (p page) text(style string, size float64, s string) {
	p.pdf.SetFont(fontFamily, style, size)
	p.pdf.MultiCell(0, lineHeight, p.tr(s), "", "L", false)
}

func (p page) row(label, value string) {
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.CellFormat(45, lineHeight, p.tr(label), "", 0, "L", false, 0, "")
	p.pdf.MultiCell(0, lineHeight, p.tr(": "+value), "", "L", false)
}

func (p page) gap() {
	p.pdf.Ln(lineHeight / 2)
}

func (r Renderer) Render(w io.Writer, payload domain.DocumentPayload) error {
	doc := payload.Document
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Type.Title()+" "+doc.Number, true)
	pdf.SetAuthor(payload.Settings.CompanyName, true)
	pdf.AddPage()

	p := page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	r.header(p, payload.Settings)

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, p.tr(doc.Type.Title()), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, lineHeight, p.tr("No. "+doc.Number), "", 1, "C", false, 0, "")
	p.gap()

	p.row("Tanggal", FormatDate(payload.IssuedAt))
	p.row("Kepada", doc.RecipientName)
	if doc.RecipientPhone != "" {
		p.row("Telepon", doc.RecipientPhone)
	}
	p.gap()

	switch doc.Type {
	case domain.DocProposal:
		r.proposal(p, payload)
	case domain.DocInvoiceDP, domain.DocInvoiceFinal:
		r.invoice(p, payload)
	case domain.DocAgreement:
		r.agreement(p, payload)
	}

	r.signature(p, payload.Settings)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render %s: %w", doc.Number, err)
	}
	return nil
}

func (r Renderer) header(p page, s domain.Settings) {
	p.text("B", 14, s.CompanyName)
	var lines []string
	for _, v := range []string{s.Address, s.Phone, s.Email} {
		if strings.TrimSpace(v) != "" {
			lines = append(lines, v)
		}
	}
	if len(lines) > 0 {
		p.text("", 9, strings.Join(lines, " | "))
	}
	y := p.pdf.GetY() + 2
	p.pdf.Line(pageMargin, y, 210-pageMargin, y)
	p.pdf.SetY(y + 4)
}

func (r Renderer) proposal(p page, payload domain.DocumentPayload) {
	subject := payload.Document.RecipientName
	if payload.Project != nil {
		subject = payload.Project.Name
	}
	p.text("", 10, fmt.Sprintf("Dengan hormat, bersama ini kami sampaikan penawaran untuk %s.", subject))
	if payload.Project != nil && payload.Project.Description != "" {
		p.gap()
		p.text("", 10, payload.Project.Description)
	}
	if payload.Project != nil {
		p.gap()
		p.row("Target selesai", FormatDate(payload.Project.Deadline))
	}
	r.amount(p, "Nilai penawaran", payload.Document.Amount)
	p.gap()
	p.text("", 10, "Demikian penawaran ini kami sampaikan. Atas perhatian dan kerja samanya kami ucapkan terima kasih.")
}

func (r Renderer) invoice(p page, payload domain.DocumentPayload) {
	if payload.Project != nil {
		p.row("Proyek", payload.Project.Name)
		p.row("Klien", payload.Project.ClientName)
		if !payload.Project.Value.IsZero() {
			p.row("Nilai kontrak", utils.FormatRupiah(payload.Project.Value))
		}
	}
	if payload.Document.Type == domain.DocInvoiceDP {
		p.row("Uang muka", utils.FormatPercent(payload.Settings.DPPercentage))
	}
	r.amount(p, "Jumlah tagihan", payload.Document.Amount)
	p.gap()

	s := payload.Settings
	if s.BankName != "" || s.BankAccountNumber != "" {
		p.text("B", 10, "Pembayaran ditransfer ke:")
		p.row("Bank", s.BankName)
		p.row("No. rekening", s.BankAccountNumber)
		p.row("Atas nama", s.BankAccountHolder)
	}
}

func (r Renderer) agreement(p page, payload domain.DocumentPayload) {
	company := payload.Settings.CompanyName
	name := payload.Document.RecipientName
	p.text("", 10, fmt.Sprintf("Perjanjian kerja sama ini dibuat antara %s sebagai Pihak Pertama dan %s sebagai Pihak Kedua (mitra).", company, name))
	p.gap()
	if m := payload.Mitra; m != nil {
		p.row("Nama mitra", m.Name)
		if m.Phone != "" {
			p.row("Telepon", m.Phone)
		}
		if m.BankName != "" {
			p.row("Rekening", fmt.Sprintf("%s %s a.n. %s", m.BankName, m.BankAccountNumber, m.BankAccountHolder))
		}
		p.gap()
	}
	clauses := []string{
		"Pihak Kedua memperkenalkan calon klien kepada Pihak Pertama.",
		"Komisi dibayarkan setelah proyek dari klien tersebut berjalan dan pembayaran diterima.",
		"Perjanjian berlaku sejak tanggal ditandatangani dan dapat diakhiri oleh salah satu pihak dengan pemberitahuan tertulis.",
	}
	for i, c := range clauses {
		p.text("", 10, fmt.Sprintf("%d. %s", i+1, c))
	}
	r.amount(p, "Nilai komisi", payload.Document.Amount)
}

func (r Renderer) amount(p page, label string, amount *decimal.Decimal) {
	if amount == nil {
		return
	}
	p.gap()
	p.pdf.SetFont(fontFamily, "B", 11)
	p.pdf.CellFormat(45, lineHeight+2, p.tr(label), "T", 0, "L", false, 0, "")
	p.pdf.CellFormat(0, lineHeight+2, p.tr(utils.FormatRupiah(*amount)), "T", 1, "R", false, 0, "")
}

func (r Renderer) signature(p page, s domain.Settings) {
	p.pdf.Ln(lineHeight * 3)
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.CellFormat(0, lineHeight, p.tr("Hormat kami,"), "", 1, "R", false, 0, "")
	p.pdf.Ln(lineHeight * 3)
	signer := s.SignerName
	if signer == "" {
		signer = s.CompanyName
	}
	p.pdf.SetFont(fontFamily, "B", 10)
	p.pdf.CellFormat(0, lineHeight, p.tr(signer), "", 1, "R", false, 0, "")
}
