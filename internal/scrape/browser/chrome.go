// Package browser renders script-heavy pages in headless Chrome.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

type Chrome struct {
	UserAgent string
	Timeout   time.Duration
	// Settle is how long to wait after the body is ready for client-side
	// rendering to finish.
	Settle time.Duration
}

func NewChrome(userAgent string, timeout time.Duration) *Chrome {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Chrome{UserAgent: userAgent, Timeout: timeout, Settle: 2 * time.Second}
}

// Render loads url and returns the document's outer HTML.
func (c *Chrome) Render(ctx context.Context, url string) (string, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if c.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(c.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	tabCtx, cancel := context.WithTimeout(tabCtx, c.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(c.Settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chrome render %s: %w", url, err)
	}
	return html, nil
}
