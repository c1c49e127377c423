package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDateFormat_Codes(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-mm-dd", true},
		{"yyyy-mm-dd hh:mm:ss", true},
		{"0.00", false},
		{"#,##0.00", false},
		{"General", false},
		{"@", false},
		{"0.00E+00", false},
		{"[Red]0.00", false},
		{"dd/mm", true},
		{"mm:ss", true},
		{"h:mm AM/PM", true},
		{"[h]:mm:ss", true},
		{"yyyy", true},
		{"yy", true},
		{"y", false},
		{"d", false},
		{"[$-409]mmmm d", true},
		{"[$-409]0.00", false},
		{"[DBNum1]yyyy-mm-dd", true},
		{"yyyyy-mm-dd", false},
		{"hhhhh:mm", false},
		{"mm:sssss", false},
		{"am/pm am/pm h:mm", false},
		{"mmmmm", false},
		{`0.0\h`, false},
		{`mm\:ss`, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDateFormat(200, tt.code), "code %q", tt.code)
	}
}

func TestIsDateFormat_Builtins(t *testing.T) {
	assert.True(t, IsDateFormat(14, ""))
	assert.False(t, IsDateFormat(1, ""))
	assert.False(t, IsDateFormat(49, ""))

	for _, id := range []int{14, 22, 27, 36, 45, 47, 50, 58, 81} {
		assert.True(t, IsDateID(id), "id %d", id)
	}
	for _, id := range []int{0, 13, 23, 26, 37, 44, 48, 49, 59, 80, 82, 164} {
		assert.False(t, IsDateID(id), "id %d", id)
	}
}

func TestDateScore(t *testing.T) {
	// y4 m2 d2 -> 40 letters + 70 date bonus
	assert.Equal(t, 110, dateScore("yyyy-mm-dd"))
	// h1 m2 am pm -> 15 + 60 time bonus + 50 am/pm
	assert.Equal(t, 125, dateScore("h:mm AM/PM"))
	// rejected codes score zero
	assert.Equal(t, 0, dateScore("yyyyy"))
	// escaped letters are literals
	assert.Equal(t, 0, dateScore(`0\h`))
	assert.Equal(t, 0, dateScore(`\`))
	assert.Equal(t, 110, dateScore(`yyyy\-mm\-dd`))
	// quoted text is scored
	assert.Equal(t, 5, dateScore(`0"h"`))
}

func BenchmarkIsDateFormat(b *testing.B) {
	codes := []string{"yyyy-mm-dd hh:mm:ss", "#,##0.00", "[$-409]mmmm d, yyyy", "0.00%"}
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		IsDateFormat(200, codes[i%len(codes)])
	}
}
