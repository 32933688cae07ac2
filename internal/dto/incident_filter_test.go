package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncidentFilter_Matches(t *testing.T) {
	tests := []struct {
		name     string
		filter   IncidentFilter
		resolved bool
		expected bool
	}{
		{"no filter keeps resolved", IncidentFilter{}, true, true},
		{"no filter keeps unresolved", IncidentFilter{}, false, true},
		{"resolved filter keeps resolved", ResolvedFilter(true), true, true},
		{"resolved filter drops unresolved", ResolvedFilter(true), false, false},
		{"unresolved filter keeps unresolved", ResolvedFilter(false), false, true},
		{"unresolved filter drops resolved", ResolvedFilter(false), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(tt.resolved))
		})
	}
}
