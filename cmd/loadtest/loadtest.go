// Command loadtest logs in a number of parents against a running portal
// and has each of them open the dashboard and the message list.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	base := flag.String("url", "http://localhost:8080", "portal base URL")
	parents := flag.Int("parents", 20, "number of simulated parents")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(10)
	for i := range *parents {
		g.Go(func() error {
			return visit(ctx, *base, fmt.Sprintf("responsavel%d@exemplo.com", i))
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("loadtest failed: %v", err)
	}
	slog.Info("loadtest finished",
		"parents", *parents,
		"elapsed", time.Since(start).String())
}

// visit logs in as email and fetches the parent pages.
func visit(ctx context.Context, base, email string) error {
	client := &http.Client{Timeout: 10 * time.Second}

	form := url.Values{"email": {email}, "password": {"senha123"}, "user_type": {"parent"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/account/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("login %s: %w", email, err)
	}
	res.Body.Close()

	// The session cookie is Secure, so a jar would not replay it over
	// plain http.
	cookies := res.Cookies()
	dashboard := res.Header.Get("HX-Redirect")
	if dashboard == "" {
		return fmt.Errorf("login %s: no redirect (status %d)", email, res.StatusCode)
	}

	for _, path := range []string{dashboard, "/parent/messages"} {
		if err := get(ctx, client, base+path, cookies); err != nil {
			return fmt.Errorf("%s: %w", email, err)
		}
	}
	return nil
}

func get(ctx context.Context, client *http.Client, target string, cookies []*http.Cookie) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	start := time.Now()
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", target, err)
	}
	defer res.Body.Close()

	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		return fmt.Errorf("GET %s: %w", target, err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", target, res.StatusCode)
	}

	slog.Debug("fetched", "url", target, "elapsed", time.Since(start).String())
	return nil
}
