// Package mgf provides a streaming reader for Mascot Generic Format
// fragment spectra.
package mgf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mzkit/lipidmatch/pkg/core"
)

// Reader provides streaming access to MGF files.
type Reader struct {
	scanner     *bufio.Scanner
	lineNum     int
	scanCount   int
	currentSpec *core.Spectrum
	err         error
}

// NewReader creates a new MGF reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Next advances to the next spectrum. Returns false when no more spectra
// or on error.
func (r *Reader) Next() bool {
	r.currentSpec = nil

	spec, err := r.readSpectrum()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.currentSpec = spec
	return true
}

// Spectrum returns the current spectrum.
func (r *Reader) Spectrum() *core.Spectrum {
	return r.currentSpec
}

// Err returns any error encountered during reading.
func (r *Reader) Err() error {
	return r.err
}

// readSpectrum reads a single BEGIN IONS ... END IONS block.
func (r *Reader) readSpectrum() (*core.Spectrum, error) {
	spec := &core.Spectrum{
		Peaks: []core.Peak{},
	}

	inIons := false
	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !inIons {
			if line == "BEGIN IONS" {
				inIons = true
				r.scanCount++
				spec.Scan.Number = r.scanCount
			}
			continue
		}

		if line == "END IONS" {
			if spec.PrecursorMZ <= 0 {
				return nil, fmt.Errorf("line %d: spectrum block without PEPMASS", r.lineNum)
			}
			spec.Scan.PrecursorMZ = spec.PrecursorMZ
			return spec, nil
		}

		if idx := strings.Index(line, "="); idx > 0 {
			key := line[:idx]
			value := line[idx+1:]
			if err := r.parseHeader(spec, key, value); err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
			continue
		}

		peak, err := r.parsePeak(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
		}
		spec.Peaks = append(spec.Peaks, peak)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if inIons {
		return nil, fmt.Errorf("line %d: unterminated spectrum block", r.lineNum)
	}

	return nil, io.EOF
}

// parseHeader handles KEY=VALUE lines inside a spectrum block.
func (r *Reader) parseHeader(spec *core.Spectrum, key, value string) error {
	switch key {
	case "PEPMASS":
		// PEPMASS may carry "mz" or "mz intensity"
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return fmt.Errorf("empty PEPMASS")
		}
		mz, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("invalid PEPMASS value %q: %w", fields[0], err)
		}
		spec.PrecursorMZ = mz

	case "CHARGE":
		// Format: "1+", "2-", or plain integer
		chargeStr := strings.TrimRight(value, "+-")
		charge, err := strconv.Atoi(chargeStr)
		if err != nil {
			return fmt.Errorf("invalid CHARGE value %q: %w", value, err)
		}
		spec.Charge = charge

	case "TITLE":
		spec.Scan.Title = value

	case "SCANS":
		n, err := strconv.Atoi(value)
		if err == nil {
			spec.Scan.Number = n
		}

	default:
		// RTINSECONDS and other headers are not needed for matching
	}
	return nil
}

// parsePeak parses a single "mz intensity" peak line.
func (r *Reader) parsePeak(line string) (core.Peak, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.Peak{}, fmt.Errorf("invalid peak format, expected at least 2 fields")
	}

	mz, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Peak{}, fmt.Errorf("invalid m/z value: %w", err)
	}

	intensity, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Peak{}, fmt.Errorf("invalid intensity value: %w", err)
	}

	return core.Peak{MZ: mz, Intensity: intensity}, nil
}
