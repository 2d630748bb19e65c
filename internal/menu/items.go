package menu

// MaxItems is the fixed capacity of a menu.
const MaxItems = 20

// LabelCells is the longest item label, in display cells.
const LabelCells = 19

// Item is one menu row.
type Item struct {
	Label   string
	Enabled bool
	Checked bool
	// Width is the rendered row width including the marker gutter.
	Width int
}

// items is a fixed-capacity list. Rows past n are unset.
type items struct {
	list [MaxItems]Item
	n    int
}

func (it *items) len() int { return it.n }

func (it *items) at(i int) (Item, bool) {
	if i < 0 || i >= it.n {
		return Item{}, false
	}
	return it.list[i], true
}

// put stores item at i, growing the list so that i is the last row if needed.
func (it *items) put(i int, item Item) bool {
	if i < 0 || i >= MaxItems {
		return false
	}
	it.list[i] = item
	if i >= it.n {
		it.n = i + 1
	}
	return true
}

// update edits row i in place. Rows past the current length may be edited
// ahead of SetItem, which overwrites them.
func (it *items) update(i int, fn func(*Item)) bool {
	if i < 0 || i >= MaxItems {
		return false
	}
	fn(&it.list[i])
	return true
}

func (it *items) labels() []string {
	out := make([]string, it.n)
	for i := 0; i < it.n; i++ {
		out[i] = it.list[i].Label
	}
	return out
}

func (it *items) reset() {
	*it = items{}
}
