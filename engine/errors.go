package engine

import (
	"fmt"
	"strings"
)

// Stage identifies the pipeline step an error came from.
type Stage int

const (
	StageValidating Stage = iota
	StageResolving
	StagePurging
	StageGenerating
	StageIndexWriting
	StageCompiling
	StageCleaningUp
	StagePublishing
	StageModelWriting
	StageBindingsWriting
	StageManifest
)

var stageNames = [...]string{
	StageValidating:      "validating",
	StageResolving:       "resolving",
	StagePurging:         "purging",
	StageGenerating:      "generating",
	StageIndexWriting:    "index-writing",
	StageCompiling:       "compiling",
	StageCleaningUp:      "cleaning-up",
	StagePublishing:      "publishing",
	StageModelWriting:    "model-writing",
	StageBindingsWriting: "bindings-writing",
	StageManifest:        "manifest",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Kind classifies what went wrong.
type Kind int

const (
	KindConfig Kind = iota
	KindResolution
	KindIO
	KindOptimization
	KindCompile
	KindConflict
)

var kindNames = [...]string{
	KindConfig:       "config",
	KindResolution:   "resolution",
	KindIO:           "io",
	KindOptimization: "optimization",
	KindCompile:      "compile",
	KindConflict:     "conflict",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// StageError is returned by Convert for every failure. Path names the
// offending file, pattern or directory when there is one.
type StageError struct {
	Stage Stage
	Kind  Kind
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s error", e.Stage, e.Kind)
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, kind Kind, path string, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Path: path, Err: err}
}
