//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Check mg.Namespace

// Runs the unit tests with the race detector.
func (Check) Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Runs go vet over every package.
func (Check) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Runs vet, then the tests.
func (Check) All() {
	mg.SerialDeps(Check.Vet, Check.Test)
}
