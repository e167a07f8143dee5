package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Skufu/GoCardio/internal/clinical"
	"github.com/Skufu/GoCardio/internal/model"
)

func TestLoadEngineMissingModel(t *testing.T) {
	_, err := loadEngine(filepath.Join(t.TempDir(), "model_tree.json"))
	if !errors.Is(err, model.ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
}

func TestLoadEngineCorruptModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model_tree.json")
	if err := os.WriteFile(path, []byte("\x80\x04\x95 not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := loadEngine(path)
	if !errors.Is(err, model.ErrModelCorrupt) {
		t.Fatalf("expected ErrModelCorrupt, got %v", err)
	}
}

func TestLoadEngineWrongWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model_tree.json")
	narrow := `{"n_features": 2, "classes": [0, 1], "children_left": [-1], "children_right": [-1],
		"feature": [-2], "threshold": [-2], "value": [[1, 0]]}`
	if err := os.WriteFile(path, []byte(narrow), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadEngine(path); err == nil {
		t.Fatal("expected error for a model that does not take 13 features")
	}
}

func TestLoadEngineShippedModel(t *testing.T) {
	engine, err := loadEngine(filepath.Join("..", "..", "model_tree.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.Predict(clinical.DefaultVector()); err != nil {
		t.Fatalf("predict with defaults: %v", err)
	}
}
