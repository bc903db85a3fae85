package main

import (
    "os"
    "time"

    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
    "github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
    Use:   "bpmn-genai",
    Short: "GenAI backend for the BPMN diagram editor",
    Long:  "bpmn-genai forwards editor prompts to a language model provider and validates the returned BPMN XML before it reaches the renderer.",
    PersistentPreRun: func(*cobra.Command, []string) {
        zerolog.TimeFieldFormat = time.RFC3339
        log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
        if verbose {
            zerolog.SetGlobalLevel(zerolog.DebugLevel)
        } else {
            zerolog.SetGlobalLevel(zerolog.InfoLevel)
        }
    },
}

func main() {
    rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
    rootCmd.AddCommand(serveCmd)
    rootCmd.AddCommand(checkCmd)
    if err := rootCmd.Execute(); err != nil {
        os.Exit(1)
    }
}
