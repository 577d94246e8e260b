package main

import "github.com/Tiliavir/icicle-admin/cmd"

func main() {
	cmd.Execute()
}
