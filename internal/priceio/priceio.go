// Package priceio loads daily price series from simple numeric text files.
package priceio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrEmpty is returned when the source contains no prices.
var ErrEmpty = errors.New("priceio: no prices found")

// Load reads a whitespace or newline separated series of daily closing
// prices, oldest first, from a file.
func Load(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("priceio: open %s: %w", path, err)
	}
	defer f.Close()

	prices, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("priceio: %s: %w", path, err)
	}

	return prices, nil
}

// Parse reads whitespace-separated positive decimal prices from a reader.
//
// Any non-numeric token or non-positive value is an error; the analysis
// pipeline log-transforms every window and cannot tolerate either.
func Parse(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var prices []float64
	for sc.Scan() {
		token := sc.Text()

		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("bad price %q at position %d: %w", token, len(prices), err)
		}

		if v <= 0 {
			return nil, fmt.Errorf("non-positive price %v at position %d", v, len(prices))
		}

		prices = append(prices, v)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(prices) == 0 {
		return nil, ErrEmpty
	}

	return prices, nil
}
