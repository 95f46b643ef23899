//go:build windows

package mini

import "testing"

func TestTopmostArgsPinWithoutMoving(t *testing.T) {
	args := topmostArgs(42)
	if len(args) != 7 || args[0] != 42 {
		t.Fatalf("unexpected arguments %v", args)
	}
	if args[1] != hwndTopmost || int(int64(args[1])) != -1 {
		t.Fatalf("expected HWND_TOPMOST, got %#x", args[1])
	}
	if args[6] != swpNoMove|swpNoSize|swpNoActivate {
		t.Fatalf("unexpected flags %#x", args[6])
	}
}
