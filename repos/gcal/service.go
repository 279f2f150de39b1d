package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/xerrors"
)

// ErrFeedUnavailable means every configured proxy failed to deliver the feed.
var ErrFeedUnavailable = errors.New("calendar feed unavailable")

// Proxy is one CORS pass-through endpoint for the calendar export. Envelope
// proxies wrap the payload in a JSON object whose "contents" field holds the
// raw text.
type Proxy struct {
	Name     string
	URL      func(target string) string
	Envelope bool
}

// DefaultProxies returns the pass-through endpoints in priority order.
func DefaultProxies() []Proxy {
	return []Proxy{
		{
			Name: "corsproxy.io",
			URL: func(target string) string {
				return "https://corsproxy.io/?" + url.QueryEscape(target)
			},
		},
		{
			Name: "allorigins.win",
			URL: func(target string) string {
				return "https://api.allorigins.win/get?url=" + url.QueryEscape(target)
			},
			Envelope: true,
		},
		{
			Name: "codetabs.com",
			URL: func(target string) string {
				return "https://api.codetabs.com/v1/proxy?quest=" + url.QueryEscape(target)
			},
		},
	}
}

// Service fetches and classifies the club's public Google Calendar export.
type Service struct {
	Client     *http.Client
	CalendarID string
	Proxies    []Proxy
	Now        func() time.Time
}

// NewService creates a feed service for the given public calendar id.
func NewService(calendarID string) *Service {
	return &Service{
		Client:     &http.Client{},
		CalendarID: calendarID,
		Proxies:    DefaultProxies(),
		Now:        time.Now,
	}
}

func icsURL(calendarID string) string {
	return fmt.Sprintf("https://calendar.google.com/calendar/ical/%s/public/basic.ics", url.QueryEscape(calendarID))
}

// FetchFixtures requests the feed through each proxy in turn and classifies
// the first non-empty payload. A proxy that errors, answers non-2xx or
// returns an empty body is skipped; a payload that is not an iCalendar
// document fails the whole fetch.
func (s *Service) FetchFixtures(ctx context.Context) ([]Fixture, error) {
	target := icsURL(s.CalendarID)

	for _, proxy := range s.Proxies {
		payload, err := s.fetchVia(ctx, proxy, target)
		if err != nil {
			log.Printf("Calendar proxy %s failed: %v\n", proxy.Name, err)
			continue
		}
		if payload == "" {
			log.Printf("Calendar proxy %s returned an empty payload\n", proxy.Name)
			continue
		}
		return ParseFeed(payload, s.Now())
	}

	return nil, ErrFeedUnavailable
}

func (s *Service) fetchVia(ctx context.Context, proxy Proxy, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proxy.URL(target), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", xerrors.Errorf("proxy %s answered %s", proxy.Name, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if proxy.Envelope {
		var envelope struct {
			Contents string `json:"contents"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return "", xerrors.Errorf("proxy %s envelope: %w", proxy.Name, err)
		}
		return envelope.Contents, nil
	}

	return string(body), nil
}
