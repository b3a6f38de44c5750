package tags

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "trims and drops empty", input: []string{" Go ", "", "  ", "SQL"}, want: []string{"Go", "SQL"}},
		{name: "exact duplicates", input: []string{"Go", "SQL", "Go"}, want: []string{"Go", "SQL"}},
		{name: "first spelling wins", input: []string{"Go", " go ", "GO", "SQL"}, want: []string{"Go", "SQL"}},
		{name: "nil", input: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, []string{"Go", "React", "SQL"}, Parse(" Go, React ,,SQL , "))
	assert.Equal(t, []string{"React"}, Parse("React, react,React"))
	assert.Equal(t, []string{}, Parse(""))
}

func TestFromForm(t *testing.T) {
	assert.Equal(t, []string{"Go", "Docker", "Figma"}, FromForm([]string{"Go, Docker", " Figma"}))
	assert.Equal(t, []string{"Go", "Docker"}, FromForm([]string{"Go, Docker", "docker", "go"}))
	assert.Equal(t, []string{}, FromForm(nil))
}

func TestList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    List
		wantErr bool
	}{
		{name: "array", input: `{"skills":["Go"," ML ",""]}`, want: List{"Go", "ML"}},
		{name: "comma string", input: `{"skills":"Go, ML"}`, want: List{"Go", "ML"}},
		{name: "duplicates", input: `{"skills":["ML","ml"," ML"]}`, want: List{"ML"}},
		{name: "null", input: `{"skills":null}`, want: nil},
		{name: "missing", input: `{}`, want: nil},
		{name: "number", input: `{"skills":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Skills List `json:"skills"`
			}
			err := json.Unmarshal([]byte(tt.input), &body)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, body.Skills)
		})
	}
}
