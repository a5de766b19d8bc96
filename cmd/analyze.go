package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tendercraft/tender-cli/internal/analyze"
	"github.com/tendercraft/tender-cli/internal/boqfile"
	"github.com/tendercraft/tender-cli/internal/model"
)

var (
	analyzeFile    string
	analyzeProject string
	analyzeBudget  float64
	analyzeSave    bool
	analyzeFormat  string
	analyzeOutput  string
)

var moneyPrinter = message.NewPrinter(language.English)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a bill of quantities",
	Long: `Reads a BOQ from a JSON or XLSX file, decomposes each work item into
material, labor, and equipment costs, layers indirect costs and tax, and
reports profit, risks, and a recommended bid price.

Examples:
  # Analyze a JSON BOQ that carries its own project name and budget
  tender-cli analyze --file boq.json

  # Analyze an XLSX item list, supplying the budget on the command line
  tender-cli analyze --file boq.xlsx --project "Warehouse" --budget 1000000

  # Persist the result for later retrieval
  tender-cli analyze --file boq.json --save`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	boq, err := boqfile.ReadBOQ(analyzeFile)
	if err != nil {
		return err
	}
	if analyzeProject != "" {
		boq.ProjectName = analyzeProject
	}
	if analyzeBudget > 0 {
		boq.TotalBudget = analyzeBudget
	}

	analyzer, err := initAnalyzer()
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, analyze.Request{
		ProjectName: boq.ProjectName,
		TotalBudget: boq.TotalBudget,
		Items:       boq.Items,
	})
	if err != nil {
		return err
	}

	if analyzeSave {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}
		if err := st.SaveAnalysis(ctx, result); err != nil {
			return err
		}
		zap.L().Info("analysis saved", zap.String("id", result.ID))
	}

	return writeAnalysis(result, analyzeFormat, analyzeOutput)
}

func writeAnalysis(result *model.BOQAnalysis, format, output string) error {
	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrapf(err, "create %s", output)
		}
		defer f.Close()
		out = f
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(result), "encode analysis")
	}

	p := moneyPrinter
	fmt.Fprintf(out, "Project: %s\n", result.ProjectName)
	p.Fprintf(out, "Budget:  %.2f\n\n", result.TotalBudget)

	p.Fprintf(out, "Items analyzed:   %d\n", result.Summary.TotalItems)
	p.Fprintf(out, "Material cost:    %.2f\n", result.Summary.TotalMaterialCost)
	p.Fprintf(out, "Labor cost:       %.2f\n", result.Summary.TotalLaborCost)
	p.Fprintf(out, "Equipment cost:   %.2f\n", result.Summary.TotalEquipmentCost)
	p.Fprintf(out, "Overhead cost:    %.2f\n", result.Summary.TotalOverheadCost)
	p.Fprintf(out, "Direct cost:      %.2f\n\n", result.Summary.TotalDirectCost)

	p.Fprintf(out, "Management cost:  %.2f\n", result.Profit.ManagementCost)
	p.Fprintf(out, "Contingency:      %.2f\n", result.Profit.ContingencyCost)
	p.Fprintf(out, "Tax:              %.2f\n", result.Profit.TaxCost)
	p.Fprintf(out, "Total cost:       %.2f\n\n", result.Profit.TotalCost)

	if result.Profit.BudgetUndefined {
		fmt.Fprintln(out, "Budget undefined: profitability not assessed")
	} else {
		p.Fprintf(out, "Net profit:       %.2f (%.2f%%)\n", result.Profit.NetProfit, result.Profit.NetProfitPercent)
		p.Fprintf(out, "Recommended bid:  %.2f (%.0f%% discount)\n", result.Profit.RecommendedBidPrice, result.Profit.RecommendedDiscountPercent)
		p.Fprintf(out, "Break-even:       %.2f\n", result.Profit.BreakEvenPrice)
		p.Fprintf(out, "Safety margin:    %.2f%%\n", result.Profit.SafetyMarginPercent)
	}

	fmt.Fprintf(out, "\nDuration: %d days\n", result.Timeline.TotalDuration)
	if len(result.Timeline.CriticalPath) > 0 {
		fmt.Fprintln(out, "Critical path:")
		for _, desc := range result.Timeline.CriticalPath {
			fmt.Fprintf(out, "  - %s\n", desc)
		}
	}

	if len(result.Risks) > 0 {
		fmt.Fprintln(out, "\nRisks:")
		for _, r := range result.Risks {
			p.Fprintf(out, "  [%s/%s] %s: %s (exposure %.2f)\n",
				r.Impact, r.Probability, r.Category, r.Description, r.EstimatedCost)
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(out, "  - %s\n", rec)
		}
	}

	return nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "BOQ file (.json or .xlsx)")
	analyzeCmd.Flags().StringVar(&analyzeProject, "project", "", "project name (overrides file)")
	analyzeCmd.Flags().Float64Var(&analyzeBudget, "budget", 0, "total budget (overrides file)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the analysis")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format: text or json")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "write output to file instead of stdout")
	analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}
