package config

import (
	"context"
	_ "embed"
)

//go:embed stock.hcl
var stockHCL []byte

// Stock returns the built-in charts over the bundled toughest-sport and
// NHL datasets, read from vars.DataDir.
func Stock(ctx context.Context, vars Vars) (*Set, error) {
	return Parse(ctx, stockHCL, "stock.hcl", vars)
}
