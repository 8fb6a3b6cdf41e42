// Package printing renders kitchen tickets for orders. Tickets are HTML
// built from html/template and can be converted to PDF with headless
// Chrome through chromedp.
package printing
