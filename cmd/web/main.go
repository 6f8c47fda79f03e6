package main

import "landmarket_backend/internal/app"

func main() {
	app.Run()
}
