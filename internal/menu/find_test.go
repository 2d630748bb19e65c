package menu

import "testing"

func TestFindPrefersExactThenPrefixThenFuzzy(t *testing.T) {
	f := newFixture(t, 240, 0)
	for i, label := range []string{"Open", "Open recent", "Save", "Save as", "Export PNG", "Quit"} {
		f.m.SetItem(i, label, label != "Save as", false)
	}

	cases := map[string]int{
		"save":    2,
		"OPEN":    0,
		"open r":  1,
		"qu":      5,
		"xpng":    4,
		"save as": -1,
		"zzz":     -1,
		"   ":     -1,
	}
	for query, want := range cases {
		if got := f.m.Find(query); got != want {
			t.Fatalf("Find(%q): expected %d, got %d", query, want, got)
		}
	}
}
