// Command tokengen prints a service token for calling the sent alert API.
package main

import (
	"flag"
	"fmt"
	"os"

	"inforequests/internal/auth"

	"github.com/joho/godotenv"
)

func main() {
	service := flag.String("service", "notifier", "name of the calling service")
	flag.Parse()

	_ = godotenv.Load()

	token, err := auth.GenerateToken(*service)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
