// Package cli provides common CLI utilities for the interlude command.
//
// This package includes:
//   - Output formatting (JSON, YAML)
//   - Job request and lyrics file loading (YAML/JSON)
//   - Output path naming for generated audio
//   - Styled status lines
//
// Example usage:
//
//	var req insertion.Request
//	if err := cli.LoadRequest("mix.yaml", &req); err != nil {
//	    return err
//	}
//
//	paths := cli.Paths{OutputDir: "generated"}
//	req.Output = paths.MixOutput(req.Song, cli.NewJobID())
//
//	// Output result
//	cli.Output(result, cli.OutputOptions{Format: cli.FormatYAML})
package cli
