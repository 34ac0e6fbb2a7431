package prompt

import (
	"context"
	"strings"
)

// Build renders the research mission prompt text from compiled templates.
func Build(ctx context.Context, p Params) (string, error) {
	var builder strings.Builder
	if err := Mission(p).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
