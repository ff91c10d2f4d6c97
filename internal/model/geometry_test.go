package model

import "testing"

func TestRectFromPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want Rect
	}{
		{
			name: "top-left to bottom-right",
			a:    Point{X: 100, Y: 150},
			b:    Point{X: 300, Y: 330},
			want: Rect{Left: 100, Top: 150, Width: 200, Height: 180},
		},
		{
			name: "bottom-right to top-left",
			a:    Point{X: 300, Y: 330},
			b:    Point{X: 100, Y: 150},
			want: Rect{Left: 100, Top: 150, Width: 200, Height: 180},
		},
		{
			name: "bottom-left to top-right",
			a:    Point{X: 100, Y: 330},
			b:    Point{X: 300, Y: 150},
			want: Rect{Left: 100, Top: 150, Width: 200, Height: 180},
		},
		{
			name: "same point",
			a:    Point{X: 50, Y: 50},
			b:    Point{X: 50, Y: 50},
			want: Rect{Left: 50, Top: 50, Width: 0, Height: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RectFromPoints(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("RectFromPoints(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectBoundingBox(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 30, Height: 40}
	want := [4]int{10, 20, 30, 40}
	if got := r.BoundingBox(); got != want {
		t.Errorf("BoundingBox() = %v, want %v", got, want)
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{Width: 10, Height: 10}, false},
		{Rect{Width: 0, Height: 10}, true},
		{Rect{Width: 10, Height: 0}, true},
		{Rect{Width: -5, Height: 10}, true},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("Rect%v.Empty() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestRectString(t *testing.T) {
	r := Rect{Left: 1, Top: 2, Width: 3, Height: 4}
	if got := r.String(); got != "1,2,3,4" {
		t.Errorf("String() = %q, want %q", got, "1,2,3,4")
	}
}

func TestParseBBox(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Rect
		wantErr bool
	}{
		{
			name: "plain",
			in:   "100,150,200,180",
			want: Rect{Left: 100, Top: 150, Width: 200, Height: 180},
		},
		{
			name: "spaces tolerated",
			in:   " 0, 0, 64, 64 ",
			want: Rect{Left: 0, Top: 0, Width: 64, Height: 64},
		},
		{
			name:    "too few parts",
			in:      "1,2,3",
			wantErr: true,
		},
		{
			name:    "not a number",
			in:      "a,b,c,d",
			wantErr: true,
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBBox(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseBBox(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBBox(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseBBox(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBBoxRoundTrip(t *testing.T) {
	r := Rect{Left: 5, Top: 6, Width: 7, Height: 8}
	got, err := ParseBBox(r.String())
	if err != nil {
		t.Fatalf("ParseBBox(%q): %v", r.String(), err)
	}
	if got != r {
		t.Errorf("round trip = %v, want %v", got, r)
	}
}
