package service

// head returns at most the first n items
func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
