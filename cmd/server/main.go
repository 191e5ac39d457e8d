package main

import (
	"os"
)

//	@title			Decision Service API
//	@version		1.0
//	@description	Session-authenticated, role-scoped decision journal.
//	@BasePath		/

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
