package oeis

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"primegaps/internal"
	"primegaps/internal/errors"
)

// Client fetches integer sequences from an OEIS-style archive. Sequences are
// served as b-files: one "index value" pair per line, # lines are comments.
type Client struct {
	baseURL    string
	maxTerms   int
	httpClient *http.Client
}

// NewClient creates a client against baseURL with a hard request timeout
func NewClient(baseURL string, timeout time.Duration, maxTerms int) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxTerms:   maxTerms,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves sequence A<seqID> capped at the client's term limit. Any
// transport, status or parse failure is non-fatal: the built-in fallback
// table is substituted and logged, matching the single-substitution policy.
func (c *Client) Fetch(ctx context.Context, seqID int) ([]int64, error) {
	terms, err := c.fetchRemote(ctx, seqID)
	if err == nil {
		return terms, nil
	}

	internal.DefaultLogger.Warn("oeis: fetch A%06d failed, using fallback data: %v", seqID, err)
	fallback := FallbackSequence(seqID, c.maxTerms)
	if len(fallback) == 0 {
		return nil, errors.SequenceFetch(seqID, err)
	}
	return fallback, nil
}

func (c *Client) fetchRemote(ctx context.Context, seqID int) ([]int64, error) {
	url := fmt.Sprintf("%s/A%06d/b%06d.txt", c.baseURL, seqID, seqID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	terms, err := parseBFile(resp.Body, c.maxTerms)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, errors.SequenceParse(seqID, fmt.Errorf("no usable terms in response"))
	}
	return terms, nil
}

// parseBFile reads "index value" lines, skipping comments and malformed
// values individually rather than failing the whole fetch.
func parseBFile(r io.Reader, maxTerms int) ([]int64, error) {
	var terms []int64

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		val, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}
		terms = append(terms, val)
		if len(terms) >= maxTerms {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}
