package main

import "mediawatch.dev/backend/cmd/app"

func main() {
	app.Run()
}
