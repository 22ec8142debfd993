package main

import (
	"fmt"
	"os"

	"github.com/metinatakli/stripe-checkout-gateway/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stripe-checkout-gateway: %v\n", err)
		os.Exit(1)
	}
}
