package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker autosave|sweep")
	}

	switch os.Args[1] {
	case "autosave":
		RunAutosave()
	case "sweep":
		RunSweepOnce()
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
