package main

import (
	"sql-audit/cmd"
)

func main() {
	cmd.Execute()
}
