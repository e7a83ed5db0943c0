package fetch

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/cache"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/worker"
)

// WebClient fetches arbitrary pages as items: robots.txt gate, rate
// limit, size-bounded read, then visible-text extraction.
type WebClient struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *robotsGate
	limiter    *worker.Limiter
	store      cache.Cache
}

// NewWebClient creates a web client from the fetch config.
func NewWebClient(cfg model.FetchConfig, limiter *worker.Limiter, store cache.Cache) *WebClient {
	return &WebClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    newRobotsGate(cfg.UserAgent, cfg.Timeout),
		limiter:   limiter,
		store:     store,
	}
}

// FetchURL fetches one page and returns it as an item whose raw text is
// the page's visible text. Disallowed or failed fetches return an error;
// the caller skips the URL and continues.
func (c *WebClient) FetchURL(ctx context.Context, rawURL string) (model.Item, error) {
	key := cache.Key(rawURL)
	if c.store != nil {
		if cached, found := c.store.Get(key); found {
			return webItem(rawURL, string(cached)), nil
		}
	}

	allowed, delay, err := c.robots.canFetch(ctx, rawURL)
	if err != nil {
		return model.Item{}, err
	}
	if !allowed {
		return model.Item{}, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return model.Item{}, fmt.Errorf("rate limit: %w", err)
	}
	if delay > 0 {
		select {
		case <-ctx.Done():
			return model.Item{}, ctx.Err()
		case <-time.After(delay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.Item{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Item{}, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Item{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return model.Item{}, fmt.Errorf("read body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return model.Item{}, fmt.Errorf("parse html: %w", err)
	}
	text := visibleText(doc)

	if c.store != nil {
		if err := c.store.Set(key, []byte(text), 0); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
		}
	}
	return webItem(rawURL, text), nil
}

func webItem(rawURL, text string) model.Item {
	sum := sha1.Sum([]byte(rawURL))
	return model.Item{
		ID:     "web_" + hex.EncodeToString(sum[:])[:12],
		Title:  rawURL,
		Source: "web",
		Raw:    text,
	}
}

// visibleText walks the document and collects text nodes, skipping
// script, style and other non-content subtrees.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}
