package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/giygas/medicombine-api/entities"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMatrixCommand(t *testing.T) {
	out, err := execute(t, "matrix", "Aspirin", "Warfarin", "Metformin")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var matrix entities.InteractionMatrix
	if err := json.Unmarshal([]byte(out), &matrix); err != nil {
		t.Fatalf("Expected JSON matrix, got %q: %v", out, err)
	}
	if len(matrix.Drugs) != 3 || len(matrix.Matrix) != 3 {
		t.Errorf("Expected 3x3 matrix, got %+v", matrix)
	}
}

func TestMatrixCommandRequiresTwoDrugs(t *testing.T) {
	if _, err := execute(t, "matrix", "Aspirin"); err == nil {
		t.Error("Expected error for a single drug")
	}

	_, err := execute(t, "matrix", "Aspirin", "ASPIRIN")
	if err == nil || !strings.Contains(err.Error(), "At least two drugs are required") {
		t.Errorf("Expected insufficient drugs error, got %v", err)
	}
}

func TestPromptCommand(t *testing.T) {
	out, err := execute(t, "prompt", "--disease", "Asthma", "--age", "30", "--weight", "65.5", "--medications", "Salbutamol")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, want := range []string{"SYSTEM:", "USER:", "Asthma", "- Weight: 65.5 kg", "- Existing Medications: Salbutamol", "- Interaction Check: enabled"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestPromptCommandValidation(t *testing.T) {
	if _, err := execute(t, "prompt", "--age", "30", "--weight", "70"); err == nil {
		t.Error("Expected error when --disease is missing")
	}

	_, err := execute(t, "prompt", "--disease", "Asthma", "--weight", "70")
	if err == nil || !strings.Contains(err.Error(), "age") {
		t.Errorf("Expected required age flag error, got %v", err)
	}

	_, err = execute(t, "prompt", "--disease", "  ", "--age", "30", "--weight", "70")
	if err == nil || !strings.Contains(err.Error(), "Disease or condition is required") {
		t.Errorf("Expected disease required error, got %v", err)
	}
}

func TestPromptCommandInteractionCheckFlag(t *testing.T) {
	out, err := execute(t, "prompt", "--disease", "Asthma", "--age", "30", "--weight", "65", "--interaction-check=false")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "- Interaction Check: disabled") {
		t.Errorf("Expected disabled interaction check in output, got %s", out)
	}
}
