//go:build !windows

package mini

// applyNativeOpacity is a no-op where the toolkit gives no window alpha;
// the background color carries the transparency instead.
func (mini *Window) applyNativeOpacity(alpha uint8) {}

// applyNativeTopmost is a no-op where the toolkit exposes no window stacking control.
func (mini *Window) applyNativeTopmost() {}
