// Package dataextract maps creature records to scalar columns and assembles
// two-column tables over snapshot files, directories, and whole populations.
package dataextract

import (
	"errors"
	"fmt"

	"neptune/internal/model"
)

// ExtractFunc maps one creature to one scalar.
type ExtractFunc func(model.Creature) (model.Scalar, error)

// Score map keys cached by the evaluator.
const (
	ScoreMemWriteRatio   = "mem_write_ratio"
	ScoreMemRatioWritten = "mem_ratio_written"
	ScoreCodeCoverage    = "code_coverage"
)

// FitnessOf returns the cached fitness scalar. Unevaluated creatures have
// none; that is an absent value, never an error.
func FitnessOf(c model.Creature) (model.Scalar, error) {
	if c.Fitness == nil || c.Fitness.CachedScalar == nil {
		return model.Absent(), nil
	}
	return model.Float(*c.Fitness.CachedScalar), nil
}

// GenerationOf returns the creature's generation. Every written snapshot
// carries one, so a missing key is a hard failure.
func GenerationOf(c model.Creature) (model.Scalar, error) {
	if c.Generation == nil {
		return model.Scalar{}, errors.New("creature has no generation")
	}
	return model.Float(float64(*c.Generation)), nil
}

func MemWriteRatioOf(c model.Creature) (model.Scalar, error) {
	return scoreOf(c, ScoreMemWriteRatio)
}

func MemRatioWrittenOf(c model.Creature) (model.Scalar, error) {
	return scoreOf(c, ScoreMemRatioWritten)
}

func CodeCoverageOf(c model.Creature) (model.Scalar, error) {
	return scoreOf(c, ScoreCodeCoverage)
}

// scoreOf assumes the full fitness.scores.<key> path exists; evaluated
// creatures always carry their sub-scores.
func scoreOf(c model.Creature, key string) (model.Scalar, error) {
	if c.Fitness == nil {
		return model.Scalar{}, fmt.Errorf("creature has no fitness for score %s", key)
	}
	value, ok := c.Fitness.Scores[key]
	if !ok {
		return model.Scalar{}, fmt.Errorf("creature has no fitness score %s", key)
	}
	return model.Float(value), nil
}

// ExtractorByName resolves the extractor names accepted on the CLI.
func ExtractorByName(name string) (ExtractFunc, error) {
	switch name {
	case "fitness":
		return FitnessOf, nil
	case "generation":
		return GenerationOf, nil
	case ScoreMemWriteRatio:
		return MemWriteRatioOf, nil
	case ScoreMemRatioWritten:
		return MemRatioWrittenOf, nil
	case ScoreCodeCoverage:
		return CodeCoverageOf, nil
	default:
		return nil, fmt.Errorf("unknown extractor: %s (want fitness|generation|%s|%s|%s)",
			name, ScoreMemWriteRatio, ScoreMemRatioWritten, ScoreCodeCoverage)
	}
}
