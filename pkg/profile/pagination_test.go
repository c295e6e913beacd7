package profile

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 1, 100},
		{5, 0, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestLinks(t *testing.T) {
	links := Links(25, 10, 2)
	if len(links) != 3 {
		t.Fatalf("got %d links, want 3", len(links))
	}
	for i, l := range links {
		if l.Number != i+1 {
			t.Errorf("link %d number = %d", i, l.Number)
		}
		if l.Active != (l.Number == 2) {
			t.Errorf("link %d active = %v", l.Number, l.Active)
		}
	}
	if Links(0, 10, 1) != nil {
		t.Error("no links expected for zero repos")
	}
}

func TestLinks_ExactlyOneActive(t *testing.T) {
	for page := 1; page <= 4; page++ {
		active := 0
		for _, l := range Links(31, 10, page) {
			if l.Active {
				active++
			}
		}
		if active != 1 {
			t.Errorf("page %d: %d active links", page, active)
		}
	}
}
