package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSearchTerm(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		want    string
		wantErr bool
	}{
		{name: "empty term", term: "", want: ""},
		{name: "plain name", term: "john", want: "john"},
		{name: "email fragment", term: "john.doe+test@example.com", want: "john.doe+test@example.com"},
		{name: "trimmed", term: "  jane  ", want: "jane"},
		{name: "union injection", term: "john UNION ALL", wantErr: true},
		{name: "tautology", term: "x OR 1=1", wantErr: true},
		{name: "comment", term: "john --", wantErr: true},
		{name: "script tag", term: "<script>alert(1)</script>", wantErr: true},
		{name: "disallowed characters", term: "john&doe", wantErr: true},
		{name: "too long", term: strings.Repeat("a", MaxSearchTermLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSearchTerm(tt.term)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, "plain", EscapeLike("plain"))
}
