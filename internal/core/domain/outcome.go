package domain

import (
	"encoding/json"
	"fmt"
)

// Outcome is the terminal result of scoring one tweet. A nil Score is a
// valid terminal state: the backend never produced a usable number
// (retries exhausted, or the reply contained no number at all).
type Outcome struct {
	TweetID string
	Text    string
	Score   *float64
}

// Scored reports whether the backend produced a numeric score.
func (o Outcome) Scored() bool {
	return o.Score != nil
}

// MarshalJSON encodes the outcome as the 3-element array
// [id, text, score|null] used by the results file.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{o.TweetID, o.Text, o.Score})
}

// UnmarshalJSON decodes the [id, text, score|null] form. Anything that
// is not exactly a three-element array of (string, string, number|null)
// is rejected so a corrupt results file fails loudly at load time.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("outcome is not an array: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("outcome has %d elements, want 3", len(raw))
	}

	var id string
	if err := json.Unmarshal(raw[0], &id); err != nil {
		return fmt.Errorf("outcome id is not a string: %w", err)
	}

	var text string
	if err := json.Unmarshal(raw[1], &text); err != nil {
		return fmt.Errorf("outcome text is not a string: %w", err)
	}

	var score *float64
	if err := json.Unmarshal(raw[2], &score); err != nil {
		return fmt.Errorf("outcome score is not a number or null: %w", err)
	}

	o.TweetID = id
	o.Text = text
	o.Score = score
	return nil
}
