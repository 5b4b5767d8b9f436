// Command adt2fhir bridges an HL7 v2 ADT topic to a FHIR R4B bundle topic:
// it consumes raw ADT messages, maps each through the transformation
// engine, and publishes the resulting transaction Bundles.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "adt2fhir",
		Short:         "Streaming HL7 v2 ADT to FHIR R4B transformation service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML configuration file")

	root.AddCommand(newRunCmd(&configPath))
	root.AddCommand(newVersionCmd())

	return root
}
