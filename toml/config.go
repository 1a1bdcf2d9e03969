// Package toml resolves command-line flag defaults from a TOML file.
//
// Top-level keys set global flags; tables named after a command set that
// command's flags:
//
//	timeout = "30s"
//
//	[verify]
//	concurrency = 8
//	rps = 2.5
//
//	[coverage]
//	exclude = ["/tags/", "/categories/"]
package toml

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lunrstore"
	"github.com/pelletier/go-toml/v2"
)

// Loader is a kong.ConfigurationLoader for TOML files.
func Loader(r io.Reader) (kong.Resolver, error) {
	var values map[string]any
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, lunrstore.Errorf(lunrstore.EINVALID, "parsing config: %s", err)
	}
	flat := flatten(values, "")

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if v, ok := flat[parent.Command.Name+"."+flag.Name]; ok {
				return v, nil
			}
		}
		if v, ok := flat[flag.Name]; ok {
			return v, nil
		}
		return nil, nil
	}), nil
}

// flatten converts nested tables to dot-separated keys and every value to
// the string form kong parses from the command line.
func flatten(m map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			for k, nested := range flatten(v, key) {
				out[k] = nested
			}
		case []any:
			items := make([]string, len(v))
			for i, item := range v {
				items[i] = strings.ReplaceAll(fmt.Sprint(item), ",", `\,`)
			}
			out[key] = strings.Join(items, ",")
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out
}
