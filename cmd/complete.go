package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the pfx command line for shell completion.
func Completion() *complete.Command {
	input := predict.Files("*.json")
	global := map[string]complete.Predictor{
		"config":    predict.Files("*.toml"),
		"select":    predict.Nothing,
		"log-level": predict.Set{"debug", "info", "warn", "error"},
	}
	withGlobals := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		for k, v := range global {
			flags[k] = v
		}
		return flags
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"metrics":  {Flags: withGlobals(map[string]complete.Predictor{"i": input, "json": predict.Nothing})},
			"validate": {Flags: withGlobals(map[string]complete.Predictor{"i": input})},
			"csv": {Flags: withGlobals(map[string]complete.Predictor{
				"i":  input,
				"t":  predict.Set{"portfolio", "transactions", "holdings"},
				"o":  predict.Dirs("*"),
				"s3": predict.Nothing,
			})},
			"report": {Flags: withGlobals(map[string]complete.Predictor{
				"i":     input,
				"pdf":   predict.Files("*.pdf"),
				"html":  predict.Files("*.html"),
				"style": predict.Set{"dark", "light", "notty", "ascii"},
			})},
			"topic": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  predict.Set{"snapshot", "metrics", "csv", "report", "config"},
			},
		},
		Flags: global,
	}
}
