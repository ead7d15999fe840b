package main

import (
	"flag"
	"fmt"
	"os"
)

func printScripts() {
	fmt.Println("Scripts:")
	for key := range scriptMap {
		fmt.Println("\t" + key)
	}
}

func main() {
	flag.Parse()

	script := flag.Arg(0)
	fn, ok := scriptMap[script]
	if !ok {
		fmt.Printf(
			"you must specify a valid script, '%s' is not a valid script.\n",
			script,
		)
		printScripts()
		os.Exit(1)
	}

	fn()
}

var scriptMap = map[string]func(){
	"dev:seed_fixtures":   seedFixtures,
	"dev:apply_db_schema": applySchema,
}
