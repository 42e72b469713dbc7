//go:build structgen

package main

import (
	"fmt"

	"github.com/sublee/structgen"
)

type Server struct {
	host    string
	port    int
	verbose bool
}

var _ = structgen.Derive[Server](
	structgen.Fields(),
	structgen.Builder(),
	structgen.Default(Server{}.port, 8080),
	structgen.BuilderDerive(structgen.DeriveString, structgen.DeriveGoString),
)

func main() {
	b := NewServerBuilder()
	fmt.Println(b)

	full := b.SetHost("localhost").SetVerbose(true)
	fmt.Printf("%#v\n", full)
	fmt.Printf("%+v\n", BuildServer(full))

	// Setting a field again replaces the value.
	fmt.Printf("%+v\n", BuildServer(full.SetPort(9090).SetHost("example.com")))
}
