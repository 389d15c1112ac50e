package quiz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	tests := map[string]struct {
		in   []UserWithCount
		want []RankedUser
	}{
		"should return an empty ranking for no users": {
			in:   nil,
			want: []RankedUser{},
		},
		"should share ranks on ties without gaps": {
			in: []UserWithCount{
				{Username: "c", Count: 1},
				{Username: "a", Count: 5},
				{Username: "b", Count: 5},
				{Username: "d", Count: -3},
			},
			want: []RankedUser{
				{Rank: 1, Username: "a", Count: 5},
				{Rank: 1, Username: "b", Count: 5},
				{Rank: 2, Username: "c", Count: 1},
				{Rank: 3, Username: "d", Count: -3},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, Rank(tc.in))
		})
	}
}

func TestRank_DoesNotReorderInput(t *testing.T) {
	in := []UserWithCount{{Username: "low", Count: 1}, {Username: "high", Count: 2}}

	Rank(in)

	require.Equal(t, "low", in[0].Username)
}
