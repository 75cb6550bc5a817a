package probe

// ChooseName picks between a window's WM_NAME and WM_ICON_NAME. The first
// wins when the two are equal or the first is strictly longer; otherwise the
// second wins. Lengths are in bytes.
func ChooseName(first, second string) string {
	if first == second || len(first) > len(second) {
		return first
	}
	return second
}
