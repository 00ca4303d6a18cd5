package main

import "github.com/pfrederiksen/exam-dates/internal/cli"

func main() {
	cli.Execute()
}
