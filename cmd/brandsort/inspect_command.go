package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"brandsort/internal/naming"
	"brandsort/internal/photometa"
	"brandsort/internal/textutil"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <filename>...",
		Short: "Show how filenames split into brand, code, variant, and category",
		Long: "Show how each filename would be routed. Arguments need not exist; for\n" +
			"existing photos the EXIF capture time and camera are shown as well.",
		Args:        cobra.MinimumNArgs(1),
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			for _, arg := range args {
				rows = append(rows, inspectRow(arg))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				{title: "File"}, {title: "Brand"}, {title: "Code"}, {title: "Variant"},
				{title: "Rule"}, {title: "Category"}, {title: "Taken"}, {title: "Camera"},
			}, rows))
			return nil
		},
	}
}

func inspectRow(arg string) []string {
	name := filepath.Base(arg)
	stem, _ := textutil.SplitExt(name)
	parsed := naming.Parse(stem)
	category := "none"
	if c := naming.Classify(name); !c.IsNone() {
		category = c.String()
	}
	row := []string{
		name,
		dash(parsed.Name),
		dash(parsed.Code),
		dash(parsed.Variant),
		dash(parsed.Rule),
		category,
	}
	taken, camera := "-", "-"
	if meta, err := photometa.Read(arg); err == nil {
		if !meta.Taken.IsZero() {
			taken = meta.Taken.Format(time.DateTime)
		}
		camera = dash(meta.Camera)
	}
	return append(row, taken, camera)
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
