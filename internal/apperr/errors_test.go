package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/vibe-eval/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("dataset is required")

	if err.Error() != "dataset is required" {
		t.Errorf("expected 'dataset is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid run spec", inner)

	if err.Error() != "invalid run spec: parse failed" {
		t.Errorf("expected 'invalid run spec: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("run spec has no dataset")

	wrapped := fmt.Errorf("failed to load: %w", original)
	doubleWrapped := fmt.Errorf("judge setup: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "run spec has no dataset" {
		t.Errorf("expected 'run spec has no dataset', got %q", ve.Message)
	}
}

func TestSchemaError(t *testing.T) {
	inner := fmt.Errorf("unexpected end of JSON input")
	err := apperr.NewSchema("out/model-a.jsonl", 7, inner)

	want := "out/model-a.jsonl:7: invalid record: unexpected end of JSON input"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}

	wrapped := fmt.Errorf("load dataset: %w", err)
	var se *apperr.SchemaError
	if !errors.As(wrapped, &se) {
		t.Fatal("errors.As should find SchemaError through wrapping")
	}
	if se.Line != 7 {
		t.Errorf("expected line 7, got %d", se.Line)
	}
}
