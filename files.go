/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
)

// humanReadableSize formats a byte count with SI prefixes, as used in the
// request logs.
func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	size := float64(bytes)
	prefix := 0
	for size >= float64(unit) && prefix < len("kMGTPE") {
		size /= float64(unit)
		prefix++
	}

	return fmt.Sprintf("%.1f %cB", size, "kMGTPE"[prefix-1])
}
