package predicatedns

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name    string
		records []string
		active  string
		want    bool
	}{
		{name: "matches active value", records: []string{"active"}, active: "active", want: true},
		{name: "no match", records: []string{"passive"}, active: "active", want: false},
		{name: "empty records", records: nil, active: "active", want: false},
		{name: "custom active value", records: []string{"primary"}, active: "primary", want: true},
		{name: "one of several matches", records: []string{"foo", "active", "bar"}, active: "active", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, interpret(tc.records, tc.active))
		})
	}
}

func TestNewDefaults(t *testing.T) {
	p := New("_active-zone.example.internal")
	require.Equal(t, "_active-zone.example.internal", p.Name)
	require.Equal(t, "", p.ActiveValue)
	require.Nil(t, p.Resolver)
}

func TestFetchActiveZone_lookupError(t *testing.T) {
	p := &Predicate{
		Name:     "does-not-resolve.invalid",
		Resolver: &net.Resolver{PreferGo: true},
	}
	_, err := p.FetchActiveZone(context.Background())
	require.Error(t, err)
}
