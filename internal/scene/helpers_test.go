package scene

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func mustColor(t *testing.T, hex string) colorful.Color {
	t.Helper()
	c, err := ParseColor(hex)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
