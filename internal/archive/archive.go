// Package archive extracts tweets from a Twitter/X archive export.
package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/vietddude/flamescan/internal/core/domain"
)

// ErrMalformedArchive is returned when the export does not contain a
// parseable JSON array.
var ErrMalformedArchive = errors.New("archive does not contain a JSON array")

// Load reads a tweets.js export from disk and returns the scorable
// tweets in file order.
func Load(path string) ([]domain.Tweet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return Parse(data)
}

// Parse extracts tweets from the raw bytes of a tweets.js export. The
// file is a JavaScript assignment wrapping a JSON array, so everything
// between the first '[' and the last ']' is taken as the array.
//
// Per record: text comes from full_text, falling back to text; the id
// comes from id_str, falling back to the numeric id. Records missing
// either are skipped. Retweets (text starting with "RT" after leading
// whitespace) are skipped as well.
func Parse(data []byte) ([]domain.Tweet, error) {
	start := bytes.IndexByte(data, '[')
	end := bytes.LastIndexByte(data, ']')
	if start == -1 || end == -1 || end <= start {
		return nil, ErrMalformedArchive
	}

	var items []struct {
		Tweet struct {
			IDStr    string `json:"id_str"`
			ID       any    `json:"id"`
			FullText string `json:"full_text"`
			Text     string `json:"text"`
		} `json:"tweet"`
	}

	dec := json.NewDecoder(bytes.NewReader(data[start : end+1]))
	// Numeric ids can exceed 2^53; keep the digits exact.
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}

	tweets := make([]domain.Tweet, 0, len(items))
	skipped := 0
	retweets := 0

	for i, item := range items {
		text := item.Tweet.FullText
		if text == "" {
			text = item.Tweet.Text
		}

		id := item.Tweet.IDStr
		if id == "" {
			switch v := item.Tweet.ID.(type) {
			case json.Number:
				id = v.String()
			case string:
				id = v
			}
		}

		if text == "" || id == "" {
			skipped++
			slog.Debug("Skipping archive record without id or text", "index", i)
			continue
		}

		if strings.HasPrefix(strings.TrimLeftFunc(text, unicode.IsSpace), "RT") {
			retweets++
			continue
		}

		tweets = append(tweets, domain.Tweet{ID: id, Text: text})
	}

	slog.Info("Parsed tweet archive",
		"tweets", len(tweets),
		"retweets_excluded", retweets,
		"skipped", skipped,
	)

	return tweets, nil
}
