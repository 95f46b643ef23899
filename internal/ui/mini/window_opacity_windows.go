//go:build windows

package mini

import (
	"fyne.io/fyne/v2/driver"
	"golang.org/x/sys/windows"
)

const (
	layeredStyle     = 0x00080000
	layeredAlphaFlag = 0x2

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

// hwndTopmost is HWND_TOPMOST, (HWND)-1.
var hwndTopmost = ^uintptr(0)

var extendedStyleIndex int32 = -20

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	getWindowLongPtr        = user32.NewProc("GetWindowLongPtrW")
	setWindowLongPtr        = user32.NewProc("SetWindowLongPtrW")
	setLayeredWindowAttribs = user32.NewProc("SetLayeredWindowAttributes")
	setWindowPos            = user32.NewProc("SetWindowPos")
)

// applyNativeOpacity makes the whole widget translucent through the window manager.
func (mini *Window) applyNativeOpacity(alpha uint8) {
	nativeWindow, ok := mini.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		if hwnd := windowHandle(context); hwnd != 0 {
			setLayeredAlpha(hwnd, alpha)
		}
	})
}

// applyNativeTopmost keeps the widget above other windows.
func (mini *Window) applyNativeTopmost() {
	nativeWindow, ok := mini.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		if hwnd := windowHandle(context); hwnd != 0 {
			setWindowPos.Call(topmostArgs(hwnd)...)
		}
	})
}

// topmostArgs are the SetWindowPos arguments that pin hwnd on top without moving,
// resizing or focusing it.
func topmostArgs(hwnd uintptr) []uintptr {
	return []uintptr{hwnd, hwndTopmost, 0, 0, 0, 0, swpNoMove | swpNoSize | swpNoActivate}
}

func windowHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		return value.HWND
	default:
		return 0
	}
}

func setLayeredAlpha(hwnd uintptr, alpha uint8) {
	index := uintptr(uint32(extendedStyleIndex))
	style, _, _ := getWindowLongPtr.Call(hwnd, index)
	if style&layeredStyle == 0 {
		setWindowLongPtr.Call(hwnd, index, style|layeredStyle)
	}
	setLayeredWindowAttribs.Call(hwnd, 0, uintptr(alpha), layeredAlphaFlag)
}
