package types

import "testing"

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want Point
	}{
		{
			name: "origin rect",
			rect: Rect{X: 0, Y: 0, Width: 100, Height: 100},
			want: Point{X: 50, Y: 50},
		},
		{
			name: "offset rect",
			rect: Rect{X: 100, Y: 200, Width: 50, Height: 80},
			want: Point{X: 125, Y: 240},
		},
		{
			name: "zero size",
			rect: Rect{X: 10, Y: 20, Width: 0, Height: 0},
			want: Point{X: 10, Y: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rect.Center()
			if got != tt.want {
				t.Errorf("Center() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center point", Point{X: 50, Y: 50}, true},
		{"top-left corner", Point{X: 0, Y: 0}, true},
		{"bottom-right corner", Point{X: 100, Y: 100}, true},
		{"outside right", Point{X: 150, Y: 50}, false},
		{"outside left", Point{X: -10, Y: 50}, false},
		{"outside top", Point{X: 50, Y: -10}, false},
		{"outside bottom", Point{X: 50, Y: 150}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestIntersects(t *testing.T) {
	group := Rect{X: 80, Y: 30, Width: 200, Height: 200}

	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"dragged element overlapping", Rect{X: 100, Y: 50, Width: 60, Height: 40}, true},
		{"fully inside", Rect{X: 100, Y: 100, Width: 10, Height: 10}, true},
		{"fully containing", Rect{X: 0, Y: 0, Width: 500, Height: 500}, true},
		{"touching left edge", Rect{X: 20, Y: 50, Width: 60, Height: 40}, true},
		{"left of group", Rect{X: 0, Y: 0, Width: 60, Height: 40}, false},
		{"below group", Rect{X: 100, Y: 231, Width: 60, Height: 40}, false},
		{"right of group", Rect{X: 281, Y: 50, Width: 10, Height: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.rect, group); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.rect, group, got, tt.want)
			}
			if got := Intersects(group, tt.rect); got != tt.want {
				t.Errorf("Intersects is not symmetric for %v", tt.rect)
			}
		})
	}
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}

	if got := a.Overlap(b); got != 2500 {
		t.Errorf("Overlap() = %v, want 2500", got)
	}
	if got := a.Overlap(Rect{X: 200, Y: 200, Width: 10, Height: 10}); got != 0 {
		t.Errorf("Overlap() of disjoint rects = %v, want 0", got)
	}
}

func TestRectTranslate(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	got := r.Translate(Point{X: 100, Y: 50})
	want := Rect{X: 110, Y: 70, Width: 30, Height: 40}
	if got != want {
		t.Errorf("Translate() = %v, want %v", got, want)
	}
	if r.X != 10 {
		t.Error("Translate should not mutate the receiver")
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 5, Y: 7}
	if got := p.Add(Point{X: 1, Y: 2}); got != (Point{X: 6, Y: 9}) {
		t.Errorf("Add() = %v", got)
	}
	if got := p.Sub(Point{X: 1, Y: 2}); got != (Point{X: 4, Y: 5}) {
		t.Errorf("Sub() = %v", got)
	}
}
