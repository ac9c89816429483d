package archive

import (
	"errors"
	"testing"
)

const sampleExport = `window.YTD.tweets.part0 = [
  {
    "tweet" : {
      "id" : 9007199254740993,
      "id_str" : "9007199254740993",
      "full_text" : "first tweet"
    }
  },
  {
    "tweet" : {
      "id_str" : "2",
      "full_text" : "RT @someone: reposted thing",
      "text" : "RT @someone: reposted thing"
    }
  },
  {
    "tweet" : {
      "id_str" : "3",
      "text" : "plain text only"
    }
  },
  {
    "tweet" : {
      "id_str" : "4"
    }
  },
  {
    "other" : { "id_str" : "5", "full_text" : "not a tweet record" }
  }
]`

func TestParse_Extraction(t *testing.T) {
	tweets, err := Parse([]byte(sampleExport))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(tweets) != 2 {
		t.Fatalf("got %d tweets, want 2: %+v", len(tweets), tweets)
	}

	if tweets[0].ID != "9007199254740993" || tweets[0].Text != "first tweet" {
		t.Errorf("tweet[0] = %+v", tweets[0])
	}
	if tweets[1].ID != "3" || tweets[1].Text != "plain text only" {
		t.Errorf("tweet[1] = %+v", tweets[1])
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	input := `[
		{"tweet": {"id_str": "10", "full_text": "a"}},
		{"tweet": {"id_str": "7", "full_text": "b"}},
		{"tweet": {"id_str": "30", "full_text": "c"}}
	]`

	tweets, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []string{"10", "7", "30"}
	for i, id := range want {
		if tweets[i].ID != id {
			t.Errorf("tweets[%d].ID = %s, want %s", i, tweets[i].ID, id)
		}
	}
}

func TestParse_RetweetAfterWhitespace(t *testing.T) {
	input := `[{"tweet": {"id_str": "1", "full_text": "  \n RT @x: hi"}}]`

	tweets, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tweets) != 0 {
		t.Errorf("retweet not excluded: %+v", tweets)
	}
}

func TestParse_NumericIDFallback(t *testing.T) {
	input := `[{"tweet": {"id": 1844674407370955161, "full_text": "big id"}}]`

	tweets, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tweets) != 1 {
		t.Fatalf("got %d tweets, want 1", len(tweets))
	}
	if tweets[0].ID != "1844674407370955161" {
		t.Errorf("ID = %s, lost precision", tweets[0].ID)
	}
}

func TestParse_PrefersFullText(t *testing.T) {
	input := `[{"tweet": {"id_str": "1", "full_text": "long version", "text": "short"}}]`

	tweets, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tweets[0].Text != "long version" {
		t.Errorf("Text = %q, want full_text", tweets[0].Text)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"no brackets", `window.YTD.tweets.part0 = "nope"`},
		{"reversed brackets", `] ... [`},
		{"invalid json inside", `window.x = [ {"tweet": } ]`},
		{"empty file", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			if !errors.Is(err, ErrMalformedArchive) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedArchive", tc.input, err)
			}
		})
	}
}

func TestParse_EmptyArray(t *testing.T) {
	tweets, err := Parse([]byte(`window.YTD.tweets.part0 = []`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tweets) != 0 {
		t.Errorf("got %d tweets, want 0", len(tweets))
	}
}
