package main

import "github.com/todoflow-labs/fragment-service/internal/app"

func main() {
	app.Run()
}
