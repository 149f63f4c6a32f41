package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{}, MapSlice([]int{}, strconv.Itoa))
	assert.Equal(t, []string{"1", "2", "3"}, MapSlice([]int{1, 2, 3}, strconv.Itoa))
}

func TestMapSliceWithError(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []int
		wantErr bool
	}{
		{name: "nil input returns nil", input: nil, want: nil},
		{name: "all valid", input: []string{"1", "20"}, want: []int{1, 20}},
		{name: "stops on first error", input: []string{"1", "x", "3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapSliceWithError(tt.input, strconv.Atoi)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapSliceWithError_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := MapSliceWithError([]int{1}, func(int) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestGroupBy(t *testing.T) {
	type row struct {
		guild int64
		user  int64
	}
	rows := []row{{1, 10}, {2, 20}, {1, 11}}

	groups := GroupBy(rows, func(r row) int64 { return r.guild })

	require.Len(t, groups, 2)
	assert.Equal(t, []row{{1, 10}, {1, 11}}, groups[1])
	assert.Equal(t, []row{{2, 20}}, groups[2])
	assert.Empty(t, GroupBy([]row(nil), func(r row) int64 { return r.guild }))
}
