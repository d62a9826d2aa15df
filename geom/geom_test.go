package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if !r.Contains(0, 0) {
		t.Fatal("expected (0,0) to be contained")
	}
	if r.Contains(10, 5) {
		t.Fatal("did not expect (10,5) to be contained; interior is half-open")
	}
	if r.Contains(5, 10) {
		t.Fatal("did not expect (5,10) to be contained; interior is half-open")
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(10, 0, 10, 10)
	if a.Intersects(b) {
		t.Fatal("rectangles sharing only an edge should not intersect")
	}
	if !a.Disjoint(b) {
		t.Fatal("edge-sharing rectangles should be considered disjoint")
	}

	c := NewRect(5, 5, 10, 10)
	if !a.Intersects(c) {
		t.Fatal("overlapping rectangles should intersect")
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)
	inner := NewRect(10, 10, 20, 20)
	if !outer.ContainsRect(inner) {
		t.Fatal("expected inner to be contained in outer")
	}
	if outer.ContainsRect(NewRect(90, 90, 20, 20)) {
		t.Fatal("did not expect a rectangle exceeding the outer bound to be contained")
	}
}

func TestSizeArea(t *testing.T) {
	sz := NewSize(8192, 8192)
	if sz.Area() != 67108864 {
		t.Fatalf("got area %d, want 67108864", sz.Area())
	}
}

func TestSizeSwapped(t *testing.T) {
	sz := NewSize(3, 7)
	sw := sz.Swapped()
	if sw.Width != 7 || sw.Height != 3 {
		t.Fatalf("got %v, want 7x3", sw)
	}
}

func TestThicknessSums(t *testing.T) {
	th := NewThickness(1, 2, 3, 4)
	if th.SumX() != 4 {
		t.Fatalf("got SumX %d, want 4", th.SumX())
	}
	if th.SumY() != 6 {
		t.Fatalf("got SumY %d, want 6", th.SumY())
	}
	if th.IsZero() {
		t.Fatal("did not expect a nonzero thickness to report IsZero")
	}
	if !(Thickness{}).IsZero() {
		t.Fatal("expected the zero-value thickness to report IsZero")
	}
}

func TestOverlapLength(t *testing.T) {
	cases := []struct {
		a1, a2, b1, b2 int
		want           int
	}{
		{0, 10, 5, 15, 5},
		{0, 10, 10, 20, 0},
		{0, 10, 20, 30, 0},
		{0, 10, 2, 8, 6},
	}
	for _, c := range cases {
		got := OverlapLength(c.a1, c.a2, c.b1, c.b2)
		if got != c.want {
			t.Errorf("OverlapLength(%d,%d,%d,%d) = %d, want %d", c.a1, c.a2, c.b1, c.b2, got, c.want)
		}
	}
}
