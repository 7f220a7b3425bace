//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the giftgrid project using Mage.
//
// Usage:
//
//	mage build      Compile giftgrid binary to bin/
//	mage test:all   Run all tests with the race detector
//	mage test:unit  Run tests without the race detector
//	mage test:cover Write a coverage profile to bin/
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install giftgrid to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "giftgrid"
	binaryDir  = "bin"
	cmdDir     = "./cmd/giftgrid"
	versionVar = "github.com/mesh-intelligence/giftgrid/internal/cli.Version"
)

// ldflags stamps the version from GIFTGRID_VERSION when set.
func ldflags() string {
	if v := os.Getenv("GIFTGRID_VERSION"); v != "" {
		return "-X " + versionVar + "=" + v
	}
	return ""
}

// Build compiles the giftgrid binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(),
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
