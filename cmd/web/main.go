package main

import "buildlink/internal/app"

func main() {
	app.Run()
}
