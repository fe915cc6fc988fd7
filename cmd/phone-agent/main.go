package main

import (
	"fmt"
	"os"

	"github.com/diegoclair/oncall-phone-agent/internal/cli"
	"github.com/diegoclair/oncall-phone-agent/internal/domain"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(domain.ExitCode(err))
	}
}
