package ui

import (
	"testing"

	"spin-sphere/internal/scene"
)

// tenPerRune measures every rune as 10 pixels at size 20, scaled linearly.
func tenPerRune(text string, size float32) float32 {
	return float32(len(text)) * 10 * size / NavTextSize
}

func TestLayoutNilChrome(t *testing.T) {
	if l := LayoutChrome(nil, 800, 600, tenPerRune); len(l.Texts) != 0 || l.Nav.H != 0 {
		t.Fatalf("expected empty layout, got %+v", l)
	}
}

func TestLayoutPlacesNavItems(t *testing.T) {
	c := scene.NewChrome("Sphere", []string{"Explore", "Create"}, "Give it a spin")
	l := LayoutChrome(c, 800, 600, tenPerRune)

	if l.Nav != (Rect{0, 0, 800, NavHeight}) {
		t.Fatalf("nav rect: %+v", l.Nav)
	}
	if len(l.Texts) != 4 {
		t.Fatalf("got %d texts", len(l.Texts))
	}
	brand, explore, create, title := l.Texts[0], l.Texts[1], l.Texts[2], l.Texts[3]
	if brand.Text != "Sphere" || brand.X != NavPadding {
		t.Errorf("brand: %+v", brand)
	}
	// "Create" is 60px wide and ends at the right padding.
	if create.Text != "Create" || create.X != 800-NavPadding-60 {
		t.Errorf("create: %+v", create)
	}
	if explore.Text != "Explore" || explore.X != create.X-LinkGap-70 {
		t.Errorf("explore: %+v", explore)
	}
	// 14 runes at size 48 is 336px.
	if title.Text != "Give it a spin" || title.X != (800-336)/2 || title.Alpha != 1 {
		t.Errorf("title: %+v", title)
	}
}

func TestLayoutFollowsIntroState(t *testing.T) {
	c := scene.NewChrome("Sphere", nil, "Give it a spin")
	c.NavOffset = -1
	c.TitleOpacity = 0
	l := LayoutChrome(c, 800, 600, tenPerRune)

	if l.Nav.Y != -NavHeight {
		t.Errorf("nav should sit above the top edge, y=%v", l.Nav.Y)
	}
	for _, txt := range l.Texts {
		if txt.Text == "Give it a spin" {
			t.Errorf("transparent title should be skipped")
		}
	}

	c.NavOffset = -0.5
	c.TitleOpacity = 0.5
	l = LayoutChrome(c, 800, 600, tenPerRune)
	if l.Nav.Y != -NavHeight/2 {
		t.Errorf("nav halfway: y=%v", l.Nav.Y)
	}
	if last := l.Texts[len(l.Texts)-1]; last.Alpha != 0.5 {
		t.Errorf("title alpha: %v", last.Alpha)
	}
}

func TestRectNDC(t *testing.T) {
	got := RectNDC(0, 0, 400, 300, 800, 600)
	want := [12]float32{-1, 1, 0, 1, 0, 0, -1, 1, 0, 0, -1, 0}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}
