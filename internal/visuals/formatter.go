package visuals

import (
	"fmt"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
)

// labelFormatterSource hides the labels of zero-sized bar segments.
const labelFormatterSource = `var formatter = function (params) {
	return params.value > 0 ? params.value : "";
};`

// LabelFormatter returns the minified JavaScript function used as the bar label
// formatter.
var LabelFormatter = sync.OnceValue(func() string {
	fn, err := minifyFunction(labelFormatterSource, "formatter")
	if err != nil {
		log.Warn().Err(err).Msg("Failed to minify label formatter, using source")
		return strings.TrimSuffix(strings.TrimPrefix(labelFormatterSource, "var formatter = "), ";")
	}
	return fn
})

// minifyFunction minifies a "var <name> = function..." declaration and returns the
// bare function expression.
func minifyFunction(src, name string) (string, error) {
	result := api.Transform(src, api.TransformOptions{
		Loader:            api.LoaderJS,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("esbuild: %s", result.Errors[0].Text)
	}
	code := strings.TrimSpace(string(result.Code))
	code = strings.TrimPrefix(code, "var "+name+"=")
	return strings.TrimSuffix(code, ";"), nil
}
