package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/proof-bridge/pkg/proof"
)

func newProveCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Generate a proof with the linked prover",
		Long: `Send a proof request to the prover linked into this binary and print the
result as hex.

Without --input the built-in reference request is used. The request file is a
JSON object with the fields idx1, idx2, idx3, sig1, sig2, sig3, cblk and blk.

This command needs a proofctl binary built with the libproof tag:
  proofctl build
  proofctl link --emit-cgo ./pkg/proof
  go build -tags libproof ./cmd/proofctl

Examples:
  proofctl prove
  proofctl prove --input request.json
  cat request.json | proofctl prove --input -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := proof.SampleRequest()
			if input != "" {
				r, err := readRequest(cmd.InOrStdin(), input)
				if err != nil {
					return err
				}
				req = r
			}

			foreign, err := a.foreign()
			if err != nil {
				return err
			}
			bridge := proof.New(foreign, proof.WithLogger(a.logger.Slog()))

			a.logger.Info("Generating proof...")
			out, err := bridge.Invoke(req)
			if err != nil {
				return err
			}
			a.logger.Success("Proof generated successfully!")
			a.logger.Info("Proof length: %d bytes", len(out))
			a.logger.Info("Proof (hex): %s", hex.EncodeToString(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Request JSON file, - for stdin")
	return cmd
}

func readRequest(stdin io.Reader, path string) (proof.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return proof.Request{}, fmt.Errorf("failed to read request: %w", err)
	}
	req, err := proof.DecodeRequest(data)
	if err != nil {
		return proof.Request{}, fmt.Errorf("invalid request %s: %w", path, err)
	}
	return req, nil
}
