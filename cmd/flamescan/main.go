package main

import "github.com/vietddude/flamescan/internal/cli"

func main() {
	cli.Execute()
}
