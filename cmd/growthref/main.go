// growthref: pediatric growth-standard z-score and percentile engine.
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/imec-int/growthref/blob/master/LICENSE.txt>.

package main

/*
growthref is a tool for computing z-scores and percentiles against the
WHO and INTERGROWTH-21st pediatric growth standards.

Usage:

	growthref build refDir catalogFile
	growthref zscore catalogFile measurement value sex [--age days] [--gestational-age days]
	growthref percentile catalogFile measurement value sex [--age days] [--gestational-age days]

Example:

	growthref build ./reference-data ./growthref.tsv.gz
	growthref zscore ./growthref.tsv.gz stature 75.0 M --age 365
	growthref percentile ./growthref.tsv.gz weight 3.4 M --gestational-age 280
*/

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"runtime"
	"strconv"

	"github.com/imec-int/growthref"
)

const (
	programVersion = "0.1"
	programName    = "growthref"
)

func programMessage() string {
	return fmt.Sprint(programName, " version ", programVersion, " compiled with ", runtime.Version())
}

const growthrefHelp = "\ngrowthref parameters:\n" +
	"growthref build refDir catalogFile\n" +
	"growthref zscore catalogFile measurement value sex [--age days] [--gestational-age days]\n" +
	"growthref percentile catalogFile measurement value sex [--age days] [--gestational-age days]\n"

func parseFlags(flags *flag.FlagSet, requiredArgs int, help string) {
	if len(os.Args) < requiredArgs {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	flags.SetOutput(ioutil.Discard)
	if err := flags.Parse(os.Args[requiredArgs:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprint(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, help)
		os.Exit(x)
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, programMessage())
		fmt.Fprint(os.Stderr, growthrefHelp)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		runBuild()
	case "zscore":
		runQuery(false)
	case "percentile":
		runQuery(true)
	case "-h", "--help", "help":
		fmt.Fprint(os.Stderr, growthrefHelp)
	default:
		fmt.Fprintln(os.Stderr, "Unrecognized command:", os.Args[1])
		fmt.Fprint(os.Stderr, growthrefHelp)
		os.Exit(1)
	}
}

func runBuild() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "build requires refDir and catalogFile.")
		fmt.Fprint(os.Stderr, growthrefHelp)
		os.Exit(1)
	}
	refDir, catalogFile := os.Args[2], os.Args[3]

	cat, err := growthref.LoadDir(refDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "growthref: building catalog:", err)
		os.Exit(1)
	}
	if err := cat.Save(catalogFile); err != nil {
		fmt.Fprintln(os.Stderr, "growthref: saving catalog:", err)
		os.Exit(1)
	}
}

func runQuery(percentile bool) {
	if len(os.Args) < 6 {
		fmt.Fprintln(os.Stderr, "query requires catalogFile, measurement, value and sex.")
		fmt.Fprint(os.Stderr, growthrefHelp)
		os.Exit(1)
	}
	catalogFile, measurement, valueRaw, sex := os.Args[2], os.Args[3], os.Args[4], os.Args[5]

	flags := flag.NewFlagSet(os.Args[1], flag.ContinueOnError)
	age := flags.Float64("age", -1, "age in days")
	gestationalAge := flags.Float64("gestational-age", -1, "gestational age in days")
	parseFlags(flags, 6, growthrefHelp)

	value, err := strconv.ParseFloat(valueRaw, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "growthref: bad value:", err)
		os.Exit(1)
	}

	var ageInput growthref.AgeInput
	if *age >= 0 {
		ageInput.AgeDays = age
	}
	if *gestationalAge >= 0 {
		ageInput.GestationalAgeDays = gestationalAge
	}

	cat, err := growthref.Load(catalogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "growthref: loading catalog:", err)
		os.Exit(1)
	}

	if percentile {
		pct, err := cat.Percentile(measurement, value, sex, ageInput)
		if err != nil {
			fmt.Fprintln(os.Stderr, "growthref:", err)
			os.Exit(1)
		}
		fmt.Println(pct)
		return
	}

	z, err := cat.ZScore(measurement, value, sex, ageInput)
	if err != nil {
		fmt.Fprintln(os.Stderr, "growthref:", err)
		os.Exit(1)
	}
	fmt.Println(z)
}
