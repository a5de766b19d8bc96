package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tendercraft/tender-cli/internal/boqfile"
	"github.com/tendercraft/tender-cli/internal/model"
	"github.com/tendercraft/tender-cli/internal/store"
)

var (
	historyAddCategory   string
	historyAddBudget     float64
	historyAddOurBid     float64
	historyAddWinningBid float64
	historyAddWon        bool
	historyAddDate       string

	historyImportFile string

	historyListCategory string
	historyListLimit    int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage historical bid outcomes",
}

var historyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one past tender outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		bid := model.HistoricalBid{
			Category:   historyAddCategory,
			Budget:     historyAddBudget,
			OurBid:     historyAddOurBid,
			WinningBid: historyAddWinningBid,
			Won:        historyAddWon,
		}
		if historyAddDate != "" {
			d, err := time.Parse("2006-01-02", historyAddDate)
			if err != nil {
				return eris.Wrapf(err, "parse date %s", historyAddDate)
			}
			bid.TenderDate = d
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		added, err := st.AddBid(ctx, bid)
		if err != nil {
			return err
		}
		fmt.Printf("recorded %s\n", added.ID)
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import outcomes from a JSON or XLSX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		bids, err := boqfile.ReadBids(historyImportFile)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		n, err := st.ImportBids(ctx, bids)
		if err != nil {
			return err
		}

		zap.L().Info("history imported",
			zap.String("file", historyImportFile),
			zap.Int("records", n))
		fmt.Printf("imported %d records\n", n)
		return nil
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		bids, err := st.ListBids(ctx, store.HistoryFilter{
			Category: historyListCategory,
			Limit:    historyListLimit,
		})
		if err != nil {
			return err
		}

		p := moneyPrinter
		for _, b := range bids {
			outcome := "lost"
			if b.Won {
				outcome = "won"
			}
			p.Printf("%s  %-24s budget %.0f  our %.0f  winning %.0f  %s\n",
				b.TenderDate.Format("2006-01-02"), b.Category, b.Budget, b.OurBid, b.WinningBid, outcome)
		}
		fmt.Printf("%d records\n", len(bids))
		return nil
	},
}

func init() {
	historyAddCmd.Flags().StringVar(&historyAddCategory, "category", "", "project category")
	historyAddCmd.Flags().Float64Var(&historyAddBudget, "budget", 0, "project budget")
	historyAddCmd.Flags().Float64Var(&historyAddOurBid, "our-bid", 0, "our bid price")
	historyAddCmd.Flags().Float64Var(&historyAddWinningBid, "winning-bid", 0, "winning bid price")
	historyAddCmd.Flags().BoolVar(&historyAddWon, "won", false, "whether we won")
	historyAddCmd.Flags().StringVar(&historyAddDate, "date", "", "tender date (YYYY-MM-DD)")
	historyAddCmd.MarkFlagRequired("category")

	historyImportCmd.Flags().StringVar(&historyImportFile, "file", "", "outcomes file (.json or .xlsx)")
	historyImportCmd.MarkFlagRequired("file")

	historyListCmd.Flags().StringVar(&historyListCategory, "category", "", "filter by category")
	historyListCmd.Flags().IntVar(&historyListLimit, "limit", 50, "maximum records")

	historyCmd.AddCommand(historyAddCmd, historyImportCmd, historyListCmd)
	rootCmd.AddCommand(historyCmd)
}
