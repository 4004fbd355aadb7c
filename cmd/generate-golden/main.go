package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Op     string `json:"op"`
	A      string `json:"a"`
	B      string `json:"b"`
	Result string `json:"result"`
}

func main() {
	outputDir := flag.String("out", "pkg/bigint/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "arith_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Operand sizes straddle the int64 boundary (19/20 digits) and then grow
	// well past anything a machine word can hold. For each size n the pair is
	// (10^n - 1, -d1d2...dn) where di cycles through 1..9.
	sizes := []int{1, 2, 9, 10, 19, 20, 21, 50, 100, 250}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, n := range sizes {
		a := strings.Repeat("9", n)
		b := "-" + cyclicDigits(n)
		for _, op := range []string{"add", "sub", "mul"} {
			data = append(data, GoldenData{
				Op:     op,
				A:      a,
				B:      b,
				Result: apply(op, a, b).String(),
			})
		}
		fmt.Printf("Generated cases for %d-digit operands\n", n)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// cyclicDigits returns the n-digit string "123456789123...".
func cyclicDigits(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(byte('1' + i%9))
	}
	return sb.String()
}

// apply computes the reference result with math/big, which serves as our
// oracle from the standard library.
func apply(op, a, b string) *big.Int {
	x, _ := new(big.Int).SetString(a, 10)
	y, _ := new(big.Int).SetString(b, 10)
	switch op {
	case "add":
		return x.Add(x, y)
	case "sub":
		return x.Sub(x, y)
	default:
		return x.Mul(x, y)
	}
}
