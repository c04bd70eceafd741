package models

import "testing"

func TestFilterTournaments(t *testing.T) {
	ts := []Tournament{
		{ID: "1", Title: "Spring Cup", Location: "City Stadium"},
		{ID: "2", Title: "Autumn League", Location: "Riverside Park"},
		{ID: "3", Title: "Winter Smash", Location: "Downtown Gym"},
	}

	if got := FilterTournaments("", ts); len(got) != 3 {
		t.Fatalf("empty query returned %d, want 3", len(got))
	}

	got := FilterTournaments("river", ts)
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("FilterTournaments(river) = %+v", got)
	}

	if got := FilterTournaments("zzzz", ts); len(got) != 0 {
		t.Errorf("FilterTournaments(zzzz) = %+v, want none", got)
	}
}
