// Package portal drives a browser session against the 楽々販売 sales portal
// to trigger and download the work-hours CSV export.
package portal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"

	"kousu/ingest"
)

// Credentials are the portal login values, loaded from the environment
// (see LoadCredentials).
type Credentials struct {
	ID       string
	Password string
}

// LoadCredentials reads the portal login from the environment. The fetch
// command loads .env first via godotenv.
func LoadCredentials() (Credentials, error) {
	creds := Credentials{
		ID:       strings.TrimSpace(os.Getenv("RAKURAKU_ID")),
		Password: strings.TrimSpace(os.Getenv("RAKURAKU_PASSWORD")),
	}
	if creds.ID == "" || creds.Password == "" {
		return Credentials{}, errors.New("RAKURAKU_ID and RAKURAKU_PASSWORD must be set (e.g. in .env)")
	}
	return creds, nil
}

// ExportOptions configure one export run.
type ExportOptions struct {
	URL          string
	DownloadDir  string
	ExportPrefix string
	BrowserBin   string
	Headless     bool
	Timeout      time.Duration
}

// The portal UI is frame-based (side navigation, main content). Elements
// inside frames are reached through the frame's contentDocument and clicked
// from script; several of the portal's handlers only fire on script clicks.
const (
	clickSideMenu     = `document.querySelector('frame[name="side"], iframe[name="side"]').contentDocument.getElementById('nav-dbg-100143').click()`
	clickWorkHistory  = `document.querySelector('frame[name="side"], iframe[name="side"]').contentDocument.getElementById('nav-db-101217').click()`
	clickWorkData     = `document.querySelector('frame[name="side"], iframe[name="side"]').contentDocument.getElementById('menuli_102577').click()`
	clickMenuBox      = `document.querySelector('frame[name="main"], iframe[name="main"]').contentDocument.getElementById('link_menu_box').click()`
	clickCsvExport    = `document.querySelector('frame[name="main"], iframe[name="main"]').contentDocument.getElementById('popupCsvExport').click()`
	clickCsvStart     = `document.querySelector('frame[name="main"], iframe[name="main"]').contentDocument.getElementById('csv_confirm_start').click()`
	clickDownloadLink = `document.querySelector('frame[name="main"], iframe[name="main"]').contentDocument.querySelector('#csv_complete_link a').click()`

	downloadLinkVisible = `(function() {
		var frame = document.querySelector('frame[name="main"], iframe[name="main"]');
		if (!frame) { return false; }
		var link = frame.contentDocument.querySelector('#csv_complete_link a');
		return link !== null && link.offsetParent !== null;
	})()`
)

// Export logs into the portal, walks the export clickpath, waits for the
// generated CSV, and returns the downloaded file path.
func Export(ctx context.Context, creds Credentials, options ExportOptions) (string, error) {
	if strings.TrimSpace(options.URL) == "" {
		return "", errors.New("portal url is required")
	}
	if options.Timeout <= 0 {
		options.Timeout = 3 * time.Minute
	}

	downloadDir := options.DownloadDir
	if downloadDir == "" {
		resolved, err := ingest.DefaultDownloadDir()
		if err != nil {
			return "", err
		}
		downloadDir = resolved
	}
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	allocOptions := []chromedp.ExecAllocatorOption{
		chromedp.Flag("headless", options.Headless),
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
	}
	if strings.TrimSpace(options.BrowserBin) != "" {
		allocOptions = append(allocOptions, chromedp.ExecPath(strings.TrimSpace(options.BrowserBin)))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOptions...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	runCtx, runCancel := context.WithTimeout(browserCtx, options.Timeout)
	defer runCancel()

	before := time.Now()

	if err := chromedp.Run(runCtx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(downloadDir),
		chromedp.Navigate(options.URL),
		chromedp.WaitVisible("#loginId", chromedp.ByID),
		chromedp.SendKeys("#loginId", creds.ID, chromedp.ByID),
		chromedp.SendKeys("#loginPassword", creds.Password, chromedp.ByID),
		chromedp.Click("#jq-loginSubmit", chromedp.ByID),
		chromedp.Sleep(3*time.Second),
	); err != nil {
		return "", fmt.Errorf("portal login failed: %w", err)
	}

	clickpath := []struct {
		name   string
		script string
	}{
		{"工務管理", clickSideMenu},
		{"作業履歴", clickWorkHistory},
		{"工数データ", clickWorkData},
		{"メニュー", clickMenuBox},
		{"CSV出力", clickCsvExport},
		{"出力開始", clickCsvStart},
	}
	for _, step := range clickpath {
		if err := chromedp.Run(runCtx,
			chromedp.Evaluate(step.script, nil),
			chromedp.Sleep(1*time.Second),
		); err != nil {
			return "", fmt.Errorf("portal clickpath step %s failed: %w", step.name, err)
		}
	}

	if err := waitForCondition(runCtx, downloadLinkVisible, 30*time.Second); err != nil {
		return "", fmt.Errorf("csv generation link did not appear: %w", err)
	}
	if err := chromedp.Run(runCtx, chromedp.Evaluate(clickDownloadLink, nil)); err != nil {
		return "", fmt.Errorf("click download link failed: %w", err)
	}

	return waitForDownload(runCtx, downloadDir, options.ExportPrefix, before)
}

func waitForCondition(ctx context.Context, script string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		var visible bool
		if err := chromedp.Run(waitCtx, chromedp.Evaluate(script, &visible)); err == nil && visible {
			return nil
		}

		select {
		case <-waitCtx.Done():
			return waitCtx.Err()
		case <-ticker.C:
		}
	}
}

// waitForDownload polls the download directory until an export newer than
// the session start shows up and its size stops changing.
func waitForDownload(ctx context.Context, dir, prefix string, since time.Time) (string, error) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var (
		candidate string
		lastSize  int64 = -1
	)
	for {
		path, err := ingest.FindLatestExport(dir, prefix)
		if err == nil {
			info, statErr := os.Stat(path)
			if statErr == nil && info.ModTime().After(since) {
				if path == candidate && info.Size() == lastSize && info.Size() > 0 {
					return path, nil
				}
				candidate = path
				lastSize = info.Size()
			}
		}

		select {
		case <-ctx.Done():
			if candidate != "" {
				return candidate, nil
			}
			return "", fmt.Errorf("timed out waiting for export download in %s", dir)
		case <-ticker.C:
		}
	}
}
