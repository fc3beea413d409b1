package main

import (
	"github.com/seq-qc/samcheck/cmd"
)

func main() {
	cmd.Execute()
}
