package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	// 80mm thermal roll; height is generous so tickets never paginate
	ticketWidthInches  = 80 / 25.4
	ticketHeightInches = 600 / 25.4
)

var _ PDFConverter = (*ChromePDF)(nil)

// ChromeConfig configures ChromePDF
type ChromeConfig struct {
	// ExecPath is the Chrome binary; empty means look it up on PATH
	ExecPath string
	// RemoteURL attaches to a running browser's DevTools endpoint instead
	RemoteURL string
	Timeout   time.Duration
	NoSandbox bool
	Logger    *zap.Logger
}

// ChromePDF prints HTML to PDF in headless Chrome
type ChromePDF struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromePDF prepares a browser allocator. Chrome itself starts lazily
// on the first conversion.
func NewChromePDF(cfg ChromeConfig) *ChromePDF {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChromeTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	c := &ChromePDF{timeout: cfg.Timeout, logger: cfg.Logger}
	if cfg.RemoteURL != "" {
		c.allocCtx, c.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return c
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	c.allocCtx, c.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return c
}

// ToPDF loads html into a blank page and prints it
func (c *ChromePDF) ToPDF(ctx context.Context, html string) ([]byte, error) {
	if html == "" {
		return nil, errors.New("HTML content is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(c.allocCtx,
		chromedp.WithLogf(c.logger.Sugar().Debugf),
	)
	defer browserCancel()

	// stop the tab when the caller's deadline passes
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(ticketWidthInches).
				WithPaperHeight(ticketHeightInches).
				WithMarginTop(0.1).
				WithMarginBottom(0.1).
				WithMarginLeft(0.1).
				WithMarginRight(0.1).
				Do(ctx)
			pdf = data
			return err
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("PDF rendering timed out after %v: %w", c.timeout, err)
		}
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	return pdf, nil
}

// Close shuts the browser down
func (c *ChromePDF) Close() {
	c.allocCancel()
}
