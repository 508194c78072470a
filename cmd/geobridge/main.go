package main

import (
	"github.com/yaptide/geobridge/cli"
)

func main() {
	cli.Launch()
}
