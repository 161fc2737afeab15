//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Run mg.Namespace

// Runs the basic example with its sample configuration.
func (Run) Basic() error {
	fmt.Println("Run basic example...")
	return sh.RunV("go", "run", "./examples/basic", "-config", "examples/basic/wheels.toml")
}

// Builds every example binary into bin/.
func (Run) Build() error {
	return sh.RunV("go", "build", "-o", "bin/", "./examples/...")
}
