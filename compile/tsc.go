package compile

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// TSC runs the TypeScript compiler binary, emitting .js and .d.ts files
// next to every source.
type TSC struct {
	Path string
	Args []string
}

// NewTSC returns a compiler running the tsc binary at path.
func NewTSC(path string) *TSC {
	if path == "" {
		path = "tsc"
	}
	return &TSC{
		Path: path,
		Args: []string{
			"--declaration",
			"--target", "es2015",
			"--module", "es2015",
			"--moduleResolution", "node",
			"--skipLibCheck",
			"--pretty", "false",
		},
	}
}

func (c *TSC) Compile(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	args := append(append([]string(nil), c.Args...), paths...)
	cmd := exec.CommandContext(ctx, c.Path, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return &Error{
			Compiler:    NameTSC,
			Diagnostics: diagnostics(out.String()),
			Err:         err,
		}
	}
	return nil
}

func diagnostics(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
