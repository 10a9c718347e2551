// Command seed credits ledger accounts for local development, e.g.
//
//	go run ./cmd/seed -address wallet-1 -amount 5000000
package main

import (
	"flag"
	"fmt"
	"os"

	"billsplit-service/internal/ledger"
	"billsplit-service/pkg/config"
	"billsplit-service/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	address := flag.String("address", "", "wallet address to credit")
	amount := flag.Uint64("amount", 0, "amount to credit, in the smallest unit")
	flag.Parse()

	if *address == "" || *amount == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	conf, err := config.Load("billsplit")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Connect(&conf.DB)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	if err := ledger.Credit(db, *address, *amount); err != nil {
		fmt.Printf("Error crediting account: %v\n", err)
		os.Exit(1)
	}

	balance, err := ledger.Balance(db, *address)
	if err != nil {
		fmt.Printf("Error reading balance: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credited %d to %s (balance now %d)\n", *amount, *address, balance)
}
