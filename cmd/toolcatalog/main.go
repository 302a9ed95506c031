// Command toolcatalog prints the built-in tool catalog as JSON.
package main

import (
	"fmt"
	"os"

	"hermes/internal/tools"
)

func main() {
	catalog, err := tools.MarshalCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render tool catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(catalog))
}
