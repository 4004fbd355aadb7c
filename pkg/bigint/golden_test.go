package bigint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// GoldenData represents the structure of our golden file entries
type GoldenData struct {
	Op     string `json:"op"`
	A      string `json:"a"`
	B      string `json:"b"`
	Result string `json:"result"`
}

func TestArithmeticAgainstGoldenFile(t *testing.T) {
	goldenPath := filepath.Join("testdata", "arith_golden.json")
	file, err := os.Open(goldenPath)
	if err != nil {
		t.Fatalf("Failed to open golden file: %v. Did you run 'go run ./cmd/generate-golden'?", err)
	}
	defer file.Close()

	var cases []GoldenData
	if err := json.NewDecoder(file).Decode(&cases); err != nil {
		t.Fatalf("Failed to decode golden file: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("golden file is empty")
	}

	ops := map[string]func(a, b Int) Int{
		"add": Add,
		"sub": Sub,
		"mul": Mul,
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%d-digits", tc.Op, len(tc.A)), func(t *testing.T) {
			t.Parallel()
			fn, ok := ops[tc.Op]
			if !ok {
				t.Fatalf("unknown op %q in golden file", tc.Op)
			}
			got := fn(MustParse(tc.A), MustParse(tc.B))
			checkCanonical(t, got)
			if got.String() != tc.Result {
				t.Errorf("Mismatch for %s(%s, %s).\nExpected: %s\nGot:      %s", tc.Op, tc.A, tc.B, tc.Result, got)
			}
		})
	}
}
