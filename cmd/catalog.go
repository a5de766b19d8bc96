package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the consumption rule catalog",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every rule group",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := initCatalog()
		if err != nil {
			return err
		}

		p := moneyPrinter
		fmt.Println("Materials:")
		for _, r := range cat.Materials {
			p.Printf("  %-24s %-18s %8.3f %s/unit @ %.2f  [%s]\n",
				r.Name, r.Specification, r.QuantityPerUnit, r.Unit, r.UnitPrice, strings.Join(r.Keywords, ", "))
		}

		fmt.Println("\nLabor:")
		for _, r := range cat.Labor {
			p.Printf("  %-24s %-8s %8.3f man-days/unit @ %.2f  [%s]\n",
				r.Type, r.Skill, r.QuantityPerUnit, r.DailyRate, strings.Join(r.Keywords, ", "))
		}

		fmt.Println("\nEquipment:")
		for _, r := range cat.Equipment {
			p.Printf("  %-24s %-8s %8.3f days/unit @ %.2f  [%s]\n",
				r.Name, r.Ownership, r.QuantityPerUnit, r.DailyRate, strings.Join(r.Keywords, ", "))
		}

		fmt.Println("\nCategories:")
		for _, r := range cat.Categories {
			fmt.Printf("  %-24s risk %-8s [%s]\n", r.Category, r.Risk, strings.Join(r.Keywords, ", "))
		}
		return nil
	},
}

var catalogMatchCmd = &cobra.Command{
	Use:   "match <description>",
	Short: "Show which rules a description triggers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := initCatalog()
		if err != nil {
			return err
		}

		description := strings.Join(args, " ")
		category, risk := cat.Categorize(description)
		fmt.Printf("Category: %s (risk %s)\n", category, risk)

		materials := cat.MatchMaterials(description)
		labor := cat.MatchLabor(description)
		equipment := cat.MatchEquipment(description)

		if len(materials)+len(labor)+len(equipment) == 0 {
			fmt.Println("No resource rules matched; the item would decompose to zero cost.")
			return nil
		}

		for _, r := range materials {
			fmt.Printf("  material:  %s\n", r.Name)
		}
		for _, r := range labor {
			fmt.Printf("  labor:     %s (%s)\n", r.Type, r.Skill)
		}
		for _, r := range equipment {
			fmt.Printf("  equipment: %s\n", r.Name)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd, catalogMatchCmd)
	rootCmd.AddCommand(catalogCmd)
}
