package cmd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	inspectFile string
	inspectJSON bool
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "sealed file to inspect")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output in JSON format")
	_ = inspectCmd.MarkFlagRequired("file")
}

// resetInspectCommandState resets the inspect command's global state for testing.
func resetInspectCommandState() {
	inspectFile = ""
	inspectJSON = false
}

// inspectOutput is the JSON shape of inspect results.
type inspectOutput struct {
	Path        string `json:"path"`
	Size        int    `json:"size"`
	CipherLen   int    `json:"cipher_len"`
	Digest      string `json:"digest"`
	Nonce       string `json:"nonce"`
	Tag         string `json:"tag"`
	Trailing    int    `json:"trailing"`
	IntegrityOK bool   `json:"integrity_ok"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Shows the structure of a sealed file without opening it",
	Long: `Parses a sealed file and checks its integrity digest. No passphrase is needed
and nothing is decrypted. Exits with status 1 when the digest does not match.

The digest only detects damage or naive edits. A matching digest does not mean
the passphrase will work.

Examples:
  envseal vault inspect --file .env.compiled
  envseal vault inspect -f .env.compiled --json`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting inspect command")

		result, err := workflows.Inspect(context.Background(), workflows.InspectOptions{Path: inspectFile})
		if err != nil {
			return reportNow(err)
		}
		Logger.Debugf("Parsed %s: size=%d cipher_len=%d trailing=%d", inspectFile, result.Size, result.CipherLen, result.Trailing)

		out := inspectOutput{
			Path:        result.Path,
			Size:        result.Size,
			CipherLen:   result.CipherLen,
			Digest:      hex.EncodeToString(result.Digest),
			Nonce:       hex.EncodeToString(result.Nonce),
			Tag:         hex.EncodeToString(result.Tag),
			Trailing:    result.Trailing,
			IntegrityOK: result.IntegrityOK,
		}

		if inspectJSON {
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to marshal inspect output: %w", err)
			}
			fmt.Println(string(data))
		} else {
			printInspectText(out)
		}

		if !result.IntegrityOK {
			return reported(kerrors.ErrIntegrityMismatch)
		}
		return nil
	},
}

func printInspectText(out inspectOutput) {
	integrity := ui.Success.Sprint("✓ ok")
	if !out.IntegrityOK {
		integrity = ui.Error.Sprint("✗ mismatch")
	}

	fields := []ui.Field{
		{Label: "Size", Value: ui.Bytes(out.Size)},
		{Label: "Header", Value: ui.Bytes(envelope.HeaderSize)},
		{Label: "Cipher length", Value: ui.Bytes(out.CipherLen)},
		{Label: "Digest", Value: out.Digest},
		{Label: "Nonce", Value: out.Nonce},
		{Label: "Tag", Value: out.Tag},
		{Label: "Integrity", Value: integrity},
	}
	if out.Trailing > 0 {
		fields = append(fields, ui.Field{Label: "Trailing", Value: ui.Warning.Sprint(ui.Bytes(out.Trailing)) + " " + ui.Muted.Sprint("ignored when opening")})
	}

	fmt.Println(ui.Info.Sprint("Sealed file") + " " + ui.Path.Sprint(out.Path) + ":")
	fmt.Print(ui.Fields(fields))
}
