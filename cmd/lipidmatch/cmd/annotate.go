package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/filter"
	"github.com/mzkit/lipidmatch/pkg/lipid"
	"github.com/mzkit/lipidmatch/pkg/match"
	"github.com/mzkit/lipidmatch/pkg/reader/mgf"
	"github.com/mzkit/lipidmatch/pkg/rules"
	"github.com/mzkit/lipidmatch/pkg/writer/sqlite"
)

func runAnnotate(cmd *cobra.Command, args []string) error {
	if err := validateAnnotateFlags(); err != nil {
		return err
	}

	// Build catalog: built-ins plus optional CSV rules
	catalog := rules.BuiltIn()
	if rulesCSV != "" {
		f, err := os.Open(rulesCSV)
		if err != nil {
			return fmt.Errorf("failed to open rules file: %w", err)
		}
		catalog, err = rules.LoadCSV(f, catalog)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to load rules file: %w", err)
		}
	}

	classRules, carbons, doubleBonds, err := rules.ParseSpeciesName(catalog, speciesName)
	if err != nil {
		return err
	}

	ion, err := core.ParseIonizationType(ionizationName)
	if err != nil {
		return err
	}

	tol, err := core.NewMZTolerance(ppmTolerance, absTolerance)
	if err != nil {
		return err
	}

	var factory lipid.Factory
	ann, err := factory.BuildSpeciesLevel(classRules.Class, carbons, doubleBonds)
	if err != nil {
		return err
	}

	inFile, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	writer, err := sqlite.NewWriter(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}
	defer writer.Close()

	filterConfig := &filter.Config{
		TopN:            topN,
		IntensityCutoff: cutoffPercent,
	}

	matcher := match.NewMatcher(tol, lipid.NewChainEnumerator(maxChainLength, maxDoubleBonds))
	matcher.OnRuleError = func(rule lipid.FragmentationRule, err error) {
		fmt.Fprintf(os.Stderr, "Warning: skipping rule %s: %v\n", rule, err)
	}
	params := match.Params{Ionization: ion, MinScore: minScore}

	fmt.Printf("Annotating %s as %s (%s)...\n", inputFile, ann.Name(), ion)

	reader := mgf.NewReader(inFile)
	spectra := 0
	matchedSpectra := 0
	totalMatches := 0
	skipped := 0

	for reader.Next() {
		spec := reader.Spectrum()
		spectra++

		if err := spec.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping spectrum %d: %v\n", spec.Scan.Number, err)
			skipped++
			continue
		}

		filter.RemoveZeroIntensityPeaks(spec)
		filterConfig.Apply(spec)
		spec.SourceFile = inputFile

		matches, err := matcher.AnnotateSpectrum(ann, classRules.Rules, spec, params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping spectrum %d: %v\n", spec.Scan.Number, err)
			skipped++
			continue
		}
		if len(matches) == 0 {
			continue
		}

		if err := writer.WriteAll(inputFile, matches); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		matchedSpectra++
		totalMatches += len(matches)
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Printf("Processed %d spectra: %d with matches (%d annotations), %d skipped\n",
		spectra, matchedSpectra, totalMatches, skipped)
	return nil
}

func runClasses(cmd *cobra.Command, args []string) error {
	for _, entry := range rules.BuiltIn() {
		template := ""
		for i, ct := range entry.Class.ChainTypes {
			if i > 0 {
				template += "/"
			}
			template += ct.String()
		}
		fmt.Printf("%-6s %-28s chains: %-18s rules: %d\n",
			entry.Class.Abbr, entry.Class.Name, template, len(entry.Rules))
	}
	return nil
}
