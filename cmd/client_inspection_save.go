// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prevencar/vistoria/internal/cli"
	"github.com/prevencar/vistoria/internal/client"
	"github.com/prevencar/vistoria/internal/inspection"
)

// clientInspectionSaveCmd represents the clientInspectionSave command.
var clientInspectionSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or replace an inspection",
	Long: `Create or replace an inspection from a JSON file. The server derives the
payment fields, refuses writes into closed months and refuses records marked
paid while incomplete. Requires inspection:write permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		path, _ := cmd.Flags().GetString("file")

		record, err := readInspection(appFs, path)
		if err != nil {
			cli.LogFatal(logger, "failed to read inspection", err, "file", path)
		}

		inspectionHandler := handler.(client.InspectionHandler)
		resp, err := inspectionHandler.SaveInspection(cmd.Context(), *record)
		if err != nil {
			cli.HandleClientError(logger, "failed to save inspection", err)
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		cli.DisplayInspection(resp)
	},
}

func readInspection(
	fs afero.Fs,
	path string,
) (*inspection.Inspection, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var record inspection.Inspection
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &record, nil
}

func init() {
	clientInspectionCmd.AddCommand(clientInspectionSaveCmd)

	clientInspectionSaveCmd.Flags().StringP("file", "F", "", "JSON file holding the inspection")
	_ = clientInspectionSaveCmd.MarkFlagRequired("file")
}
