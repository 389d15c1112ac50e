/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

type RankedUser struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

// Rank orders users by count, highest first. Equal counts share a rank and
// the next lower count gets the following rank, with no gaps.
func Rank(users []UserWithCount) []RankedUser {
	sorted := slices.Clone(users)
	slices.SortStableFunc(sorted, func(a, b UserWithCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	rank := 1
	return lo.Map(sorted, func(u UserWithCount, i int) RankedUser {
		if i > 0 && sorted[i-1].Count > u.Count {
			rank++
		}
		return RankedUser{Rank: rank, Username: u.Username, Count: u.Count}
	})
}
