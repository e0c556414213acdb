// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package words

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/toeirei/wordle-assistant/internal/solver"
)

const (
	// DefaultAllowedURL is the community maintained list of accepted guesses.
	DefaultAllowedURL = "https://raw.githubusercontent.com/tabatkins/wordle-list/main/words"
	// DefaultUsedURL lists past answers as upper-case words.
	DefaultUsedURL = "https://www.fiveforks.com/wordle/block/"
	// UsedSource is recorded in the used word file.
	UsedSource = "fiveforks"

	userAgent   = "wordle-assistant/1.0"
	syncTimeout = 30 * time.Second
	// maxBody bounds how much of a response is read.
	maxBody = 16 << 20
)

var answerPattern = regexp.MustCompile(`\b[A-Z]{5}\b`)

// isoFormat matches the timestamp layout of earlier used word files.
const isoFormat = "2006-01-02T15:04:05.999999-07:00"

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: syncTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// SyncAllowed downloads a whitespace separated word list from url, keeps the
// valid five-letter words and writes them to path one per line. It returns
// the number of words written.
func SyncAllowed(ctx context.Context, client *http.Client, url, path string) (int, error) {
	body, err := fetch(ctx, client, url)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	n := 0
	for _, f := range strings.Fields(string(body)) {
		w := solver.NormalizeWord(f)
		if !solver.ValidWord(w) {
			continue
		}
		buf.WriteString(w)
		buf.WriteByte('\n')
		n++
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return 0, err
	}
	return n, nil
}

// SyncUsed fetches the past-answers page at url, collects every standalone
// run of five capital letters from its visible text and writes the sorted,
// lowercased set to path as JSON. It returns the number of words written.
func SyncUsed(ctx context.Context, client *http.Client, url, path string, now time.Time) (int, error) {
	body, err := fetch(ctx, client, url)
	if err != nil {
		return 0, err
	}
	used, err := ExtractAnswers(bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	data, err := json.MarshalIndent(UsedFile{
		LastSyncedUTC: now.UTC().Format(isoFormat),
		Source:        UsedSource,
		Used:          used,
	}, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := writeFileAtomic(path, append(data, '\n')); err != nil {
		return 0, err
	}
	return len(used), nil
}

// ExtractAnswers parses an HTML document and returns the distinct five
// capital letter words of its text nodes, lowercased and sorted. Script and
// style contents are ignored.
func ExtractAnswers(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	seen := map[string]struct{}{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			for _, m := range answerPattern.FindAllString(n.Data, -1) {
				seen[strings.ToLower(m)] = struct{}{}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}
