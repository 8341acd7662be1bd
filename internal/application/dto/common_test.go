package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPageNormaliza(t *testing.T) {
	cases := []struct {
		name       string
		in         PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"cero aplica defaults", PageRequest{}, DefaultPageLimit, 0},
		{"negativos se corrigen", PageRequest{Limit: -5, Offset: -1}, DefaultPageLimit, 0},
		{"dentro del rango se respeta", PageRequest{Limit: 50, Offset: 40}, 50, 40},
		{"por encima del máximo se acota", PageRequest{Limit: 500}, MaxPageLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.DefaultPage()
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
			assert.Equal(t, tc.wantOffset, tc.in.Offset)
		})
	}
}
