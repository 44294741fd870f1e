// Package horoscope fetches the daily horoscope for a zodiac sign from
// astroyogi's public pages. The lookup is best effort: a reminder goes out
// with or without it.
package horoscope

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"

	"budgetmail/internal/log"
)

const baseURL = "https://www.astroyogi.com/horoscopes/daily"

// ErrNotFound means the page loaded but held no horoscope paragraph, which
// usually means the page structure changed.
var ErrNotFound = errors.New("horoscope content not found")

// Daily is one day's horoscope and the page it came from.
type Daily struct {
	Text string
	URL  string
}

type Client struct {
	httpClient *http.Client
	cache      *cache.Cache
	logger     *log.Logger
}

// NewClient builds a client that caches fetched horoscopes for the given
// TTL, so the preview server's repeated re-renders hit the site once a day.
func NewClient(logger *log.Logger, ttl time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache.New(ttl, ttl),
		logger:     logger.WithComponent(log.ComponentScrape),
	}
}

// Fetch returns the daily horoscope for the sign, from cache when possible.
func (c *Client) Fetch(ctx context.Context, sign Sign) (Daily, error) {
	if hit, ok := c.cache.Get(string(sign)); ok {
		return hit.(Daily), nil
	}

	url := fmt.Sprintf("%s/%s-free-horoscope.aspx", baseURL, strings.ToLower(string(sign)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Daily{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Daily{}, fmt.Errorf("fetch horoscope: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Daily{}, fmt.Errorf("fetch horoscope: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Daily{}, fmt.Errorf("parse horoscope page: %w", err)
	}

	text, ok := extract(doc)
	if !ok {
		c.logger.WarnContext(ctx, "No horoscope paragraph found", "sign", sign.String(), "url", url)
		return Daily{}, ErrNotFound
	}

	d := Daily{Text: text, URL: url}
	c.cache.SetDefault(string(sign), d)
	return d, nil
}

// extract finds the first paragraph inside the content div that starts with
// "Dear " and cleans it up for the email.
func extract(doc *goquery.Document) (string, bool) {
	var text string
	doc.Find("div.content-page p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		t := strings.TrimSpace(sel.Text())
		if strings.HasPrefix(t, "Dear ") {
			text = cleanup(t)
			return false
		}
		return true
	})
	return text, text != ""
}

// cleanup drops the site's self-mention and fixes lowercase sentence starts
// that show up in the source text.
func cleanup(text string) string {
	text = strings.ReplaceAll(text, "Astroyogi a", "a")
	sentences := strings.Split(text, ". ")
	for i, s := range sentences {
		if s == "" {
			continue
		}
		sentences[i] = strings.ToUpper(s[:1]) + s[1:]
	}
	return strings.Join(sentences, ". ")
}
