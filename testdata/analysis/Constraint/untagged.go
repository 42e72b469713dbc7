package testdata

import "github.com/sublee/structgen" // want `file must have "//go:build structgen" constraint when importing structgen`

var _ structgen.Option
