package main

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dee1911/Aspire.can/internal/catalog"
)

var (
	catalogQuery    string
	catalogProvince string
	catalogFaculty  string
	catalogCategory string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print reference catalog entries as YAML",
}

var catalogScholarshipsCmd = &cobra.Command{
	Use:   "scholarships",
	Short: "List scholarships",
	Args:  cobra.NoArgs,
	RunE: withCatalog(func(cat *catalog.Catalog, out io.Writer) error {
		return writeYAML(out, cat.Scholarships())
	}),
}

var catalogProgramsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List university programs",
	Args:  cobra.NoArgs,
	RunE: withCatalog(func(cat *catalog.Catalog, out io.Writer) error {
		return writeYAML(out, cat.Programs(catalog.ProgramFilter{
			Query:    catalogQuery,
			Province: catalogProvince,
			Faculty:  catalogFaculty,
		}))
	}),
}

var catalogActivitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List extracurricular activities",
	Args:  cobra.NoArgs,
	RunE: withCatalog(func(cat *catalog.Catalog, out io.Writer) error {
		return writeYAML(out, cat.Activities(catalog.ActivityFilter{
			Query:    catalogQuery,
			Province: catalogProvince,
			Category: catalogCategory,
		}))
	}),
}

func init() {
	catalogCmd.PersistentFlags().StringVarP(&catalogQuery, "query", "q", "", "Case-insensitive text match")
	catalogCmd.PersistentFlags().StringVar(&catalogProvince, "province", "", "Filter by province")
	catalogProgramsCmd.Flags().StringVar(&catalogFaculty, "faculty", "", "Filter by faculty")
	catalogActivitiesCmd.Flags().StringVar(&catalogCategory, "category", "", "Filter by category")

	catalogCmd.AddCommand(catalogScholarshipsCmd, catalogProgramsCmd, catalogActivitiesCmd)
}

func withCatalog(fn func(cat *catalog.Catalog, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log, err := quietLogger()
		if err != nil {
			return err
		}
		cat, err := catalog.Default(log)
		if err != nil {
			return err
		}
		return fn(cat, cmd.OutOrStdout())
	}
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
