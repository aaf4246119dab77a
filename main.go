// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jcodagnone/civicreport/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
