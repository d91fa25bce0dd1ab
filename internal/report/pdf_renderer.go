package report

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	apperrors "github.com/ajharbinger/comps-mao-pipeline/internal/errors"
	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
)

// Renderer produces a downloadable document artifact from a comp packet
// and returns its location. Cleanup of the artifact is the caller's
// responsibility.
type Renderer interface {
	RenderPDF(ctx context.Context, packet *models.CompPacket) (string, error)
}

// ChromiumRenderer prints the comp packet to PDF via headless Chromium
type ChromiumRenderer struct {
	reportDir  string
	chromePath string
}

// NewChromiumRenderer creates a renderer writing into reportDir. An empty
// chromePath falls back to well-known install locations.
func NewChromiumRenderer(reportDir, chromePath string) *ChromiumRenderer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &ChromiumRenderer{
		reportDir:  reportDir,
		chromePath: chromePath,
	}
}

// RenderPDF writes comp-packet-<id>.pdf into the report dir and returns
// its path
func (r *ChromiumRenderer) RenderPDF(ctx context.Context, packet *models.CompPacket) (string, error) {
	htmlDoc, err := buildHTML(packet)
	if err != nil {
		return "", err
	}

	pdf, err := r.printToPDF(ctx, htmlDoc)
	if err != nil {
		return "", apperrors.RenderError("chromium print failed", err)
	}

	path := filepath.Join(r.reportDir, "comp-packet-"+uuid.NewString()+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", apperrors.RenderError("write pdf", err)
	}
	return path, nil
}

func (r *ChromiumRenderer) printToPDF(ctx context.Context, htmlDoc string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

const packetCSS = `
body{font-family:Helvetica,Arial,sans-serif;color:#1c1917;font-size:12px;margin:0.6rem;}
h1{font-size:1.5rem;border-bottom:2px solid #1c1917;padding-bottom:0.25rem;}
h2{font-size:1.15rem;color:#44403c;}
h3{font-size:1rem;}
table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.75rem;}
th,td{border:1px solid #a8a29e;padding:0.3rem 0.4rem;text-align:left;vertical-align:top;}
thead th{background:#f1f5f9;font-weight:700;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
@media print{@page{size:letter;margin:12mm;}}
`

func buildHTML(packet *models.CompPacket) (string, error) {
	markdown := BuildMarkdown(packet)

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", apperrors.RenderError("markdown convert", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>Comp Packet</title>" +
		"<style>" + packetCSS + "</style></head><body>" +
		content.String() +
		"</body></html>", nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
