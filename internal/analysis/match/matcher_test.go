package match

import (
	"testing"

	"github.com/nuanxinlab/heartchat-go/internal/model/therapist"
)

func TestRankMatchesKeywords(t *testing.T) {
	results := Rank("最近加班太多，晚上总是失眠", therapist.Seed(), 3)
	if len(results) == 0 {
		t.Fatal("expected at least one match")
	}
	if results[0].Therapist.ID != "t-lin-wan" {
		t.Fatalf("expected the anxiety/sleep therapist first, got %s", results[0].Therapist.ID)
	}
	if len(results[0].Matched) == 0 || results[0].Score == 0 {
		t.Fatalf("expected matched keywords and a score: %+v", results[0])
	}
}

func TestRankDeterministic(t *testing.T) {
	a := Rank("和伴侣吵架了，很难过", therapist.Seed(), 3)
	b := Rank("和伴侣吵架了，很难过", therapist.Seed(), 3)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic result count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Therapist.ID != b[i].Therapist.ID {
			t.Fatalf("non-deterministic order at %d: %s vs %s", i, a[i].Therapist.ID, b[i].Therapist.ID)
		}
	}
}

func TestRankNoMatch(t *testing.T) {
	if results := Rank("今天天气怎么样", therapist.Seed(), 3); len(results) != 0 {
		t.Fatalf("expected no matches, got %+v", results)
	}
}

func TestRankHonorsLimit(t *testing.T) {
	// A message touching several buckets still yields at most limit entries.
	results := Rank("失眠又和家人吵架，考试压力大还很难过", therapist.Seed(), 2)
	if len(results) > 2 {
		t.Fatalf("expected at most 2 results, got %d", len(results))
	}
}
