package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/view"
)

// catalogctl import <file.xlsx>
func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Bulk-create products from a workbook, skipping existing barcodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			result, err := a.service.ImportProducts(cmd.Context(), data)
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			if result.NoData {
				fmt.Fprintln(out, "No data found in file")
				return nil
			}
			fmt.Fprintf(out, "Imported %d of %d rows (%d skipped)\n",
				result.InsertedCount, result.TotalRows, result.SkippedCount)
			return nil
		},
	}
}

// catalogctl export [-o file.xlsx]
func newExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every product to a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.service.ExportProducts(cmd.Context())
			if err != nil {
				return userError(err)
			}

			if output == "" {
				output = "products_" + time.Now().UTC().Format("20060102") + ".xlsx"
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default products_YYYYMMDD.xlsx)")
	return cmd
}

// catalogctl list [--search q] [--client id]
func newListCmd(a *app) *cobra.Command {
	var search, client string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print products, narrowed by name and shown with the client's columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lv := view.NewListView(a.service)
			if err := lv.Refresh(cmd.Context()); err != nil {
				return userError(err)
			}
			products := lv.SetQuery(search)

			pref, err := view.LoadColumnPreference(cmd.Context(), a.prefs, core.ModuleProducts, client)
			if err != nil {
				return userError(err)
			}
			cols := append([]string{core.FieldID}, pref.Columns()...)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(cols, "\t"))
			for _, p := range products {
				cells := make([]string, len(cols))
				for i, col := range cols {
					cells[i] = productCell(p, col)
				}
				fmt.Fprintln(tw, strings.Join(cells, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d products\n", len(products), len(lv.All()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive product name filter")
	cmd.Flags().StringVar(&client, "client", "cli", "client id for column preferences")
	return cmd
}

func productCell(p core.Product, col string) string {
	str := func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	}

	switch col {
	case core.FieldID:
		return p.ID
	case core.FieldProductName:
		return p.ProductName
	case core.FieldHSNCode:
		return str(p.HSNCode)
	case core.FieldSKU:
		return str(p.SKU)
	case core.FieldTax:
		if p.Tax == nil {
			return "-"
		}
		return core.FormatNumber(*p.Tax)
	case core.FieldBarcode:
		return p.Barcode
	case core.FieldWarehouseLocation:
		return str(p.WarehouseLocation)
	case core.FieldImage:
		return str(p.Image)
	}
	return ""
}
