package templates

import (
	"testing"

	"github.com/hay-kot/chance/pkg/randfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	opts := options([]string{"phone", "zip"})
	require.Len(t, opts, 3)

	assert.Equal(t, "phone", opts[0].Key)
	assert.Equal(t, "phone", opts[0].Value)
	assert.Equal(t, "zip", opts[1].Value)
	assert.Equal(t, customOption, opts[2].Value)
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errIs   error
	}{
		{name: "valid", input: "(%3d) %3d-%4d"},
		{name: "literal only", input: "hello"},
		{name: "unknown rule is not a parse error", input: "%x"},
		{name: "blank", input: "   ", wantErr: true},
		{name: "malformed", input: "%3", wantErr: true, errIs: randfmt.ErrMalformedSpecifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTemplate(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}
