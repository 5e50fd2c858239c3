package compile

import (
	"context"
	"fmt"
	"os"

	"github.com/evanw/esbuild/pkg/api"
)

// Esbuild transpiles sources in process. It emits .js files only; type
// declarations require tsc.
type Esbuild struct {
	Target api.Target
}

// NewEsbuild returns an in-process compiler targeting ES2015.
func NewEsbuild() *Esbuild {
	return &Esbuild{Target: api.ES2015}
}

func (c *Esbuild) Compile(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result := api.Transform(string(source), api.TransformOptions{
			Loader:     api.LoaderTS,
			Format:     api.FormatESModule,
			Target:     c.Target,
			Sourcefile: path,
		})
		if len(result.Errors) > 0 {
			return &Error{
				Compiler:    NameEsbuild,
				Diagnostics: messages(result.Errors),
			}
		}

		if err := os.WriteFile(artifactBase(path)+".js", result.Code, 0o644); err != nil {
			return fmt.Errorf("failed to write artifact for %s: %w", path, err)
		}
	}
	return nil
}

func messages(msgs []api.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Location != nil {
			out = append(out, fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text))
			continue
		}
		out = append(out, msg.Text)
	}
	return out
}
