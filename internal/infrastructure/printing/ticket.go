package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	orderapp "github.com/restaurant/backend/internal/application/order"
	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/restaurant/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Content types produced by TicketRenderer
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

// PDFConverter turns a complete HTML document into PDF bytes
type PDFConverter interface {
	ToPDF(ctx context.Context, html string) ([]byte, error)
}

var _ orderapp.TicketRenderer = (*TicketRenderer)(nil)

// TicketRenderer renders kitchen tickets as HTML, or as PDF when a
// converter is set
type TicketRenderer struct {
	tmpl       *template.Template
	restaurant string
	pdf        PDFConverter
	logger     *zap.Logger
}

// TicketOption configures TicketRenderer
type TicketOption func(*TicketRenderer)

// WithPDFConverter makes Render return PDF documents
func WithPDFConverter(c PDFConverter) TicketOption {
	return func(r *TicketRenderer) {
		r.pdf = c
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) TicketOption {
	return func(r *TicketRenderer) {
		r.logger = l
	}
}

// WithLocation renders times in loc instead of UTC
func WithLocation(loc *time.Location) TicketOption {
	return func(r *TicketRenderer) {
		r.tmpl.Funcs(template.FuncMap{"clock": newFormatter(language.English, "", loc).clock})
	}
}

// NewTicketRenderer builds a renderer from the printing configuration
func NewTicketRenderer(cfg *config.PrintingConfig, opts ...TicketOption) (*TicketRenderer, error) {
	f := newFormatter(language.English, cfg.CurrencySym, time.UTC)
	tmpl, err := template.New("ticket").Funcs(template.FuncMap{
		"money":   f.money,
		"integer": f.integer,
		"clock":   f.clock,
		"status":  f.title,
		"deref":   func(p *int) int { return *p },
		"lineTotal": func(l orderapp.LineItemResponse) string {
			return f.money(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		},
	}).Parse(ticketTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ticket template: %w", err)
	}

	r := &TicketRenderer{
		tmpl:       tmpl,
		restaurant: cfg.Restaurant,
		logger:     zap.NewNop(),
	}
	if r.restaurant == "" {
		r.restaurant = "Kitchen Ticket"
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type ticketData struct {
	Restaurant string
	Order      orderapp.OrderResponse
	ItemCount  int
}

// Render produces the ticket for o
func (r *TicketRenderer) Render(ctx context.Context, o orderapp.OrderResponse) ([]byte, string, error) {
	ctx, span := telemetry.StartSpan(ctx, "ticket.render", attribute.String("order.number", o.OrderNumber))
	defer span.End()

	data := ticketData{Restaurant: r.restaurant, Order: o}
	for _, it := range o.Items {
		data.ItemCount += it.Quantity
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		telemetry.RecordError(span, err)
		return nil, "", fmt.Errorf("failed to render ticket: %w", err)
	}
	if r.pdf == nil {
		return buf.Bytes(), ContentTypeHTML, nil
	}

	start := time.Now()
	pdf, err := r.pdf.ToPDF(ctx, buf.String())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, "", fmt.Errorf("failed to convert ticket to PDF: %w", err)
	}
	if len(pdf) == 0 {
		err := errors.New("PDF converter returned no data")
		telemetry.RecordError(span, err)
		return nil, "", err
	}
	r.logger.Debug("Kitchen ticket rendered",
		zap.String("order_number", o.OrderNumber),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdf, ContentTypePDF, nil
}
