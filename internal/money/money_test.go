package money

import (
	"errors"
	"testing"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int64
		wantErr bool
	}{
		{
			name: "whole amount",
			text: "12",
			want: 1200,
		},
		{
			name: "two decimal places",
			text: "-12.50",
			want: -1250,
		},
		{
			name: "single decimal place",
			text: "3.5",
			want: 350,
		},
		{
			name: "sub-cent rounds half away from zero",
			text: "0.005",
			want: 1,
		},
		{
			name: "negative sub-cent rounds half away from zero",
			text: "-0.005",
			want: -1,
		},
		{
			name: "sub-cent rounds down below half",
			text: "0.004",
			want: 0,
		},
		{
			name: "large statement amount",
			text: "-4796.67",
			want: -479667,
		},
		{
			name: "zero",
			text: "0.00",
			want: 0,
		},
		{
			name:    "empty string",
			text:    "",
			wantErr: true,
		},
		{
			name:    "not a number",
			text:    "12,50",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			text:    "12.50x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCents(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrMalformedAmount))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocator_DistributeRemainder(t *testing.T) {
	tests := []struct {
		name   string
		target int64
		shares []int64
		want   []int64
	}{
		{
			name:   "already balanced",
			target: 1000,
			shares: []int64{300, 700},
			want:   []int64{300, 700},
		},
		{
			name:   "positive remainder within slack goes to first share",
			target: 1000,
			shares: []int64{499, 499},
			want:   []int64{501, 499},
		},
		{
			name:   "negative remainder within slack goes to first share",
			target: 1000,
			shares: []int64{502, 502},
			want:   []int64{498, 502},
		},
		{
			name:   "remainder at slack boundary left alone",
			target: 1000,
			shares: []int64{500, 495},
			want:   []int64{500, 495},
		},
		{
			name:   "remainder beyond slack left alone",
			target: 1000,
			shares: []int64{100, 100},
			want:   []int64{100, 100},
		},
		{
			name:   "single share absorbs remainder",
			target: 333,
			shares: []int64{330},
			want:   []int64{333},
		},
		{
			name:   "empty shares",
			target: 100,
			shares: []int64{},
			want:   []int64{},
		},
	}

	a := NewAllocator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.DistributeRemainder(tt.target, tt.shares)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocator_DistributeRemainderDoesNotMutateInput(t *testing.T) {
	shares := []int64{499, 499}
	a := NewAllocator()

	got := a.DistributeRemainder(1000, shares)

	assert.Equal(t, []int64{501, 499}, got)
	assert.Equal(t, []int64{499, 499}, shares)
}

func TestAllocator_CustomSlack(t *testing.T) {
	a := Allocator{Slack: 10}

	got := a.DistributeRemainder(1000, []int64{500, 493})
	assert.Equal(t, []int64{507, 493}, got)
}
