package main

import (
	"os"

	"lingolog.app/backend/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
