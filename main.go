package main

import (
	"log"
	"os"

	"github.com/jdwit/upload-notify/internal/cli"
)

func main() {
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		log.Println("running in AWS Lambda environment")
		cli.RunLambda()
	} else {
		cli.Execute()
	}
}
