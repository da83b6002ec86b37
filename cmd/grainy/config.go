package main

import (
	"errors"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix for environment variable names, so AMOUNT becomes GRAINY_AMOUNT.
const envprefix = "GRAINY"

// Configuration holds the flag defaults, read from environment variables
// with github.com/kelseyhightower/envconfig.
type Configuration struct {
	Amount     float64 `default:"20" desc:"Grain strength, offsets are drawn from [-amount, amount]"`
	Chromatic  bool    `default:"false" desc:"Draw an independent offset per channel"`
	Alpha      bool    `default:"false" desc:"Apply grain to the alpha channel too"`
	RandomMode string  `split_words:"true" default:"float" desc:"Random mode: int|float"`
	Seed       uint64  `default:"0" desc:"Random seed, 0 picks a random one"`
	Blend      string  `default:"multiply" desc:"Blend mode of the texture overlay"`
	Frames     int     `default:"1" desc:"Number of frames to render"`
	DriftEvery int     `split_words:"true" default:"2" desc:"Frames between two texture drifts"`
	Quality    int     `default:"95" desc:"JPEG quality of the output"`
}

// loadConfiguration loads an optional .env file and parses the environment.
func loadConfiguration() Configuration {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load dotenv: %s", err)
	}

	var conf Configuration
	if err := envconfig.Process(envprefix, &conf); err != nil {
		log.Fatalf("failed parsing environment: %s", err)
	}
	return conf
}

// printEnvUsage lists the environment variables understood by the command.
func printEnvUsage(w io.Writer) {
	tabs := tabwriter.NewWriter(w, 1, 0, 4, ' ', 0)
	envconfig.Usagef(envprefix, &Configuration{}, tabs, usageHelpFormat)
	tabs.Flush()
}

// see https://github.com/kelseyhightower/envconfig/blob/v1.4.0/usage.go#L31
const usageHelpFormat = `
Flag defaults can be set with the following environment variables:
KEY	DESCRIPTION	DEFAULT
{{range .}}{{usage_key .}}	{{usage_description .}}	{{usage_default .}}
{{end}}`
