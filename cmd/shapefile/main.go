package main

import "github.com/beetlebugorg/shapefile/cmd/shapefile/cmd"

func main() {
	cmd.Execute()
}
