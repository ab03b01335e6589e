package intent

import (
	"fmt"
	"strings"

	"github.com/moodreel/moodreel/internal/gemini"
)

const promptHeader = `You turn a viewer's mood description into structured search filters for a movie catalog.

Rules:
- "type" is "movie" unless the viewer clearly wants series, shows, or episodes.
- "genres" may only contain names from the genre list below. If nothing fits, leave it empty.
- "keywords" are short lowercase phrases for themes the genre list cannot express (e.g. "time travel", "heist", "zombie").
- Include "year" only when the viewer names a specific year.

Examples:
Input: "Show me some horror films"
Output: {"type":"movie","genres":["Horror"],"keywords":[]}

Input: "a feel-good space adventure series"
Output: {"type":"tv","genres":["Comedy","Sci-Fi & Fantasy"],"keywords":["space"]}

Input: "crime movies about bank heists from 1995"
Output: {"type":"movie","genres":["Crime","Thriller"],"keywords":["heist"],"year":1995}`

// buildPrompt assembles the extraction prompt, embedding the current session
// genre vocabulary so the model only names genres the catalog knows.
func buildPrompt(text string, genreNames []string) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n\nGenre list: ")
	b.WriteString(strings.Join(genreNames, ", "))
	b.WriteString(fmt.Sprintf("\n\nInput: %q\nOutput:", text))
	return b.String()
}

// intentSchema is the response schema every extraction call is constrained to:
// required type/genres/keywords, optional numeric year.
func intentSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: "object",
		Properties: map[string]*gemini.Schema{
			"type": {
				Type: "string",
				Enum: []string{"movie", "tv"},
			},
			"genres": {
				Type:  "array",
				Items: &gemini.Schema{Type: "string"},
			},
			"keywords": {
				Type:  "array",
				Items: &gemini.Schema{Type: "string"},
			},
			"year": {
				Type:     "integer",
				Nullable: true,
			},
		},
		Required: []string{"type", "genres", "keywords"},
	}
}
