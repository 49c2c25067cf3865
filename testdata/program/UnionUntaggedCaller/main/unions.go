//go:build unwrapgen

package main

import "github.com/sublee/unwrapgen"

var ShapeAs = unwrapgen.Union[Shape]()
