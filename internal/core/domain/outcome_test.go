package domain

import (
	"encoding/json"
	"testing"
)

func TestOutcomeMarshal_Triple(t *testing.T) {
	score := 7.5
	o := Outcome{TweetID: "1234567890123456789", Text: "hello", Score: &score}

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `["1234567890123456789","hello",7.5]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestOutcomeMarshal_NullScore(t *testing.T) {
	o := Outcome{TweetID: "42", Text: "no score"}

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `["42","no score",null]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestOutcomeUnmarshal_RoundTrip(t *testing.T) {
	// ID above 2^53 must survive the round trip digit for digit.
	input := `["1844674407370955161","text with \"quotes\"",3]`

	var o Outcome
	if err := json.Unmarshal([]byte(input), &o); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if o.TweetID != "1844674407370955161" {
		t.Errorf("TweetID = %s, want 1844674407370955161", o.TweetID)
	}
	if o.Text != `text with "quotes"` {
		t.Errorf("Text = %q", o.Text)
	}
	if o.Score == nil || *o.Score != 3 {
		t.Errorf("Score = %v, want 3", o.Score)
	}
}

func TestOutcomeUnmarshal_Null(t *testing.T) {
	var o Outcome
	if err := json.Unmarshal([]byte(`["1","t",null]`), &o); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if o.Scored() {
		t.Error("expected unscored outcome")
	}
}

func TestOutcomeUnmarshal_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"not an array", `{"id":"1"}`},
		{"two elements", `["1","t"]`},
		{"four elements", `["1","t",1,2]`},
		{"numeric id", `[1,"t",null]`},
		{"numeric text", `["1",2,null]`},
		{"string score", `["1","t","7"]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var o Outcome
			if err := json.Unmarshal([]byte(tc.input), &o); err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", tc.input)
			}
		})
	}
}
