// Command sheets-doctor verifies Google Sheets mirror connectivity. It
// authenticates with the configured service account, lists the taxonomy
// and prints the current month's overview so credentials and sheet
// layout can be checked before pointing the worker at a spreadsheet.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gsheet "momentum/internal/sheets/google"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		log.Fatalf("initialize sheets client: %v", err)
	}

	fmt.Println("Connected to spreadsheet", os.Getenv("GOOGLE_SPREADSHEET_ID"))

	categories, err := cli.List(ctx)
	if err != nil {
		log.Fatalf("list taxonomy: %v", err)
	}
	fmt.Printf("Taxonomy: %d categories\n", len(categories))
	for _, name := range categories {
		fmt.Println("  -", name)
	}

	now := time.Now()
	overview, err := cli.ReadMonthOverview(ctx, now.Year(), int(now.Month()))
	if err != nil {
		log.Fatalf("read month overview: %v", err)
	}

	fmt.Printf("Overview %d-%02d: income %s, expenses %s, net %s\n",
		overview.Year, overview.Month,
		overview.Income, overview.Expenses, overview.Net)
	for _, ca := range overview.ByCategory {
		fmt.Printf("  %-20s %s\n", ca.Name, ca.Amount)
	}
}
