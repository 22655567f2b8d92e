package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcriptify/models"
)

const validReply = `{
	"formatted_text": "Hello there. This is the formatted transcript.",
	"summary": "A greeting.",
	"tags": ["greeting"],
	"key_points": ["someone says hello"]
}`

func TestParseAnalysis(t *testing.T) {
	a, err := parseAnalysis(validReply)
	require.NoError(t, err)
	assert.Equal(t, "A greeting.", a.Summary)
	assert.Equal(t, []string{"greeting"}, a.Tags)
	assert.Equal(t, []string{"someone says hello"}, a.KeyPoints)
}

func TestParseAnalysisStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validReply + "\n```"
	a, err := parseAnalysis(fenced)
	require.NoError(t, err)
	assert.Equal(t, "A greeting.", a.Summary)
}

func TestParseAnalysisRejectsMalformedJSON(t *testing.T) {
	_, err := parseAnalysis("this is not json")
	assert.Error(t, err)
}

func TestValidateAnalysis(t *testing.T) {
	input := "hello there this is the transcript"

	tests := []struct {
		name    string
		a       models.Analysis
		wantErr string
	}{
		{
			name: "valid",
			a: models.Analysis{
				FormattedText: "Hello there. This is the transcript.",
				Summary:       "A greeting.",
				Tags:          []string{"greeting"},
				KeyPoints:     []string{"hello"},
			},
		},
		{
			name:    "missing formatted text",
			a:       models.Analysis{Summary: "s", Tags: []string{"t"}, KeyPoints: []string{"k"}},
			wantErr: "missing formatted text",
		},
		{
			name: "formatted text unchanged",
			a: models.Analysis{
				FormattedText: input,
				Summary:       "s",
				Tags:          []string{"t"},
				KeyPoints:     []string{"k"},
			},
			wantErr: "unchanged",
		},
		{
			name:    "missing analysis fields",
			a:       models.Analysis{FormattedText: "Formatted."},
			wantErr: "summary, tags, key_points",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAnalysis(input, &tt.a)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestTemplatePerStyle(t *testing.T) {
	styles := map[models.Style]string{
		models.StyleDefault:   "key_points",
		models.StyleAcademic:  "research_implications",
		models.StyleTechnical: "code_snippets",
		models.StyleBusiness:  "market_insights",
	}
	for style, marker := range styles {
		tmpl := Template(style)
		assert.NotEmpty(t, tmpl, "style %s", style)
		assert.Contains(t, tmpl, marker, "style %s", style)
		assert.Contains(t, tmpl, "formatted_text", "style %s", style)
	}

	// Unknown styles fall back to the default template.
	assert.Equal(t, Template(models.StyleDefault), Template(models.Style("nonsense")))
}
