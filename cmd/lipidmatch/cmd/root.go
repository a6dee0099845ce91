// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Flags for annotate command
	inputFile      string
	outputFile     string
	speciesName    string
	ionizationName string
	rulesCSV       string
	ppmTolerance   float64
	absTolerance   float64
	minScore       float64
	maxChainLength int
	maxDoubleBonds int
	topN           int
	cutoffPercent  float64
)

var rootCmd = &cobra.Command{
	Use:   "lipidmatch",
	Short: "LipidMatch - lipid MS/MS fragment annotation tool",
	Long: `LipidMatch annotates lipid MS/MS spectra against class-specific
fragmentation rule catalogs: it explains fragment peaks by known
fragmentation pathways, scores the explained spectrum intensity, and
infers molecular-species-level chain compositions from species-level
annotations.

Supports:
- Built-in rule catalogs (PC, PE, TG, ether PC) plus CSV rule files
- Combined ppm/absolute m/z tolerance
- Peak filtering (top-N, intensity cutoff)
- SQLite result output`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(classesCmd)

	// Annotate command flags
	annotateCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input MGF file path (required)")
	annotateCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output SQLite database file (required)")
	annotateCmd.Flags().StringVarP(&speciesName, "species", "s", "", "Species-level annotation to test, e.g. 'PC 34:1' (required)")
	annotateCmd.Flags().StringVar(&ionizationName, "ionization", "[M+H]+", "Ionization type, e.g. '[M+H]+', '[M-H]-', '[M+NH4]+'")
	annotateCmd.Flags().StringVar(&rulesCSV, "rules", "", "Path to additional rules CSV file")
	annotateCmd.Flags().Float64Var(&ppmTolerance, "ppm", 10, "Relative m/z tolerance in ppm")
	annotateCmd.Flags().Float64Var(&absTolerance, "abs", 0.005, "Absolute m/z tolerance in Da")
	annotateCmd.Flags().Float64Var(&minScore, "min-score", 60, "Minimum explained-intensity score in percent")
	annotateCmd.Flags().IntVar(&maxChainLength, "max-chain-length", 26, "Maximum chain carbon count for enumeration")
	annotateCmd.Flags().IntVar(&maxDoubleBonds, "max-double-bonds", 6, "Maximum chain double-bond count for enumeration")
	annotateCmd.Flags().IntVar(&topN, "top-n", 0, "Keep only top N most intense peaks (0 = no limit)")
	annotateCmd.Flags().Float64Var(&cutoffPercent, "cutoff", 0, "Intensity cutoff as % of base peak (0 = no cutoff)")

	annotateCmd.MarkFlagRequired("in")
	annotateCmd.MarkFlagRequired("out")
	annotateCmd.MarkFlagRequired("species")
}

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate MS/MS spectra against a species-level lipid annotation",
	Long: `Annotate fragment spectra from an MGF file against the fragmentation
rules of a lipid class, confirm the species-level annotation, and predict
molecular-species-level chain compositions.

Examples:
  # Annotate spectra as PC 34:1 in positive mode
  lipidmatch annotate --in run.mgf --out results.db --species 'PC 34:1'

  # Negative mode PE with custom tolerance and threshold
  lipidmatch annotate --in run.mgf --out results.db --species 'PE 34:1' --ionization '[M-H]-' --ppm 5 --min-score 40

  # Extra rules from CSV and peak filtering
  lipidmatch annotate --in run.mgf --out results.db --species 'TG 52:2' --ionization '[M+NH4]+' --rules rules.csv --top-n 150`,
	RunE: runAnnotate,
}

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List built-in lipid classes",
	Long:  `Print the built-in lipid classes with their chain templates and rule counts.`,
	RunE:  runClasses,
}

func validateAnnotateFlags() error {
	if minScore < 0 || minScore > 100 {
		return fmt.Errorf("min-score must be in [0, 100], got %f", minScore)
	}
	return nil
}
