package validation

import (
	"testing"

	"github.com/ginjaninja78/leadconv/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRequired(t *testing.T) {
	tests := []struct {
		name    string
		lead    types.Lead
		missing []string
	}{
		{
			name: "complete",
			lead: types.Lead{Name: "Ada", Company: "Analytical", Email: "ada@example.com"},
		},
		{
			name:    "no email",
			lead:    types.Lead{Name: "Ada", Company: "Analytical"},
			missing: []string{FieldEmail},
		},
		{
			name:    "nothing",
			lead:    types.Lead{Role: "CTO"},
			missing: []string{FieldName, FieldCompany, FieldEmail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.lead.RowNumber = 7
			reason := CheckRequired(&tt.lead)

			if tt.missing == nil {
				assert.Nil(t, reason)
				return
			}

			require.NotNil(t, reason)
			assert.Equal(t, 7, reason.RowNumber)
			assert.Equal(t, tt.missing, reason.Missing)
		})
	}
}

func TestSkipReason_Error(t *testing.T) {
	r := &SkipReason{RowNumber: 3, Missing: []string{FieldCompany, FieldEmail}}
	assert.Equal(t, "row 3: missing company, email", r.Error())
}

func TestSummarize(t *testing.T) {
	counts := Summarize([]SkipReason{
		{RowNumber: 2, Missing: []string{FieldEmail}},
		{RowNumber: 4, Missing: []string{FieldName, FieldEmail}},
	})

	assert.Equal(t, map[string]int{FieldEmail: 2, FieldName: 1}, counts)
}
