package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"go.uber.org/zap"
)

// captureStdout runs fn with os.Stdout redirected and returns everything
// fn printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestMain(m *testing.M) {
	logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestRunCompileBasicUsage(t *testing.T) {
	out := captureStdout(t, func() {
		if err := runCompile(compileCmd, []string{"../../examples/basic_usage.yaml"}); err != nil {
			t.Fatalf("runCompile: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("x4 = F")) {
		t.Errorf("expected x4 = F in output, got:\n%s", out)
	}
}

func TestRunCompileRainyDayHasNoContradiction(t *testing.T) {
	out := captureStdout(t, func() {
		if err := runCompile(compileCmd, []string{"../../examples/rainy_day.yaml"}); err != nil {
			t.Fatalf("runCompile: %v", err)
		}
	})
	// Without evidence the base knowledge alone leaves take_umbrella
	// underdetermined; just confirm the compile didn't contradict.
	if bytes.Contains([]byte(out), []byte("contradiction")) {
		t.Errorf("expected no contradiction, got:\n%s", out)
	}
}

func TestRunPredictRainyDayContradiction(t *testing.T) {
	old := evidenceFlag
	evidenceFlag = "sky_is_grey=true,humidity_is_high=true,wind_is_strong=true"
	defer func() { evidenceFlag = old }()

	out := captureStdout(t, func() {
		if err := runPredict(predictCmd, []string{"../../examples/rainy_day.yaml"}); err != nil {
			t.Fatalf("runPredict: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("contradiction")) {
		t.Errorf("expected a contradiction, got:\n%s", out)
	}
}

func TestRunQueryImportationExportationIsTautology(t *testing.T) {
	out := captureStdout(t, func() {
		if err := runQuery(queryCmd, []string{"../../examples/importation_exportation.yaml", "E8"}); err != nil {
			t.Fatalf("runQuery: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("E8 = T")) {
		t.Errorf("expected E8 = T (tautology), got:\n%s", out)
	}
}

func TestRunQueryNoCompileReportsNotCompiled(t *testing.T) {
	old := skipCompile
	skipCompile = true
	defer func() { skipCompile = old }()

	out := captureStdout(t, func() {
		if err := runQuery(queryCmd, []string{"../../examples/basic_usage.yaml", "x1"}); err != nil {
			t.Fatalf("runQuery: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("not compiled")) {
		t.Errorf("expected a not-compiled message, got:\n%s", out)
	}
}
