package testdata

import "github.com/sublee/unwrapgen" // want `file must have "//go:build unwrapgen" constraint when importing unwrapgen`

var _ = unwrapgen.Skip(Circle{})
