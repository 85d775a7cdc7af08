package main

import "github.com/KartikZCoding/campusgate/cmd"

func main() {
	cmd.Execute()
}
