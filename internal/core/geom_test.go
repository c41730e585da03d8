package core

import "testing"

func TestRectTakeSkip(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	tests := []struct {
		name     string
		got      Rect
		expected Rect
	}{
		{"take left", r.TakeLeft(30), NewRect(10, 20, 30, 50)},
		{"take left larger than width", r.TakeLeft(500), NewRect(10, 20, 100, 50)},
		{"take top", r.TakeTop(10), NewRect(10, 20, 100, 10)},
		{"take right", r.TakeRight(30), NewRect(80, 20, 30, 50)},
		{"take right larger than width", r.TakeRight(500), NewRect(10, 20, 100, 50)},
		{"take bot", r.TakeBot(20), NewRect(10, 50, 100, 20)},
		{"skip left", r.SkipLeft(30), NewRect(40, 20, 70, 50)},
		{"skip top", r.SkipTop(10), NewRect(10, 30, 100, 40)},
		{"skip right", r.SkipRight(30), NewRect(10, 20, 70, 50)},
		{"skip bot", r.SkipBot(20), NewRect(10, 20, 100, 30)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got %+v, expected %+v", tc.got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 16, 16)

	if !r.Contains(FPos{X: 0, Y: 0}) {
		t.Error("top-left corner should be inside")
	}
	if !r.Contains(FPos{X: 15.9, Y: 15.9}) {
		t.Error("point just inside bottom-right should be inside")
	}
	if r.Contains(FPos{X: 16, Y: 8}) {
		t.Error("right edge should be exclusive")
	}
	if r.Contains(FPos{X: -1, Y: 8}) {
		t.Error("point left of rect should be outside")
	}
}

func TestWorldToGame(t *testing.T) {
	tests := []struct {
		in       FPos
		expected Pos
	}{
		{FPos{0, 0}, P(0, 0)},
		{FPos{15.9, 15.9}, P(0, 0)},
		{FPos{16, 0}, P(1, 0)},
		{FPos{33, 47}, P(2, 2)},
		{FPos{-1, -1}, P(-1, -1)},
	}

	for _, tc := range tests {
		if got := WorldToGame(tc.in); got != tc.expected {
			t.Errorf("WorldToGame(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestGridWorldPos(t *testing.T) {
	got := GridWorldPos(FPos{X: 37.5, Y: 16.2})
	if got != (FPos{X: 32, Y: 16}) {
		t.Errorf("GridWorldPos() = %v, expected (32,16)", got)
	}
}

func TestPosWorldRoundTrip(t *testing.T) {
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			p := P(x, y)
			if got := WorldToGame(p.World()); got != p {
				t.Errorf("WorldToGame(%v.World()) = %v", p, got)
			}
		}
	}
}

func TestLerp(t *testing.T) {
	a := FPos{X: 0, Y: 0}
	b := FPos{X: 16, Y: 32}

	if got := Lerp(a, b, 0.5); got != (FPos{X: 8, Y: 16}) {
		t.Errorf("Lerp(0.5) = %v", got)
	}
	if got := Lerp(a, b, 2); got != b {
		t.Errorf("Lerp should clamp t to 1, got %v", got)
	}
	if got := Lerp(a, b, -1); got != a {
		t.Errorf("Lerp should clamp t to 0, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d",
				tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
