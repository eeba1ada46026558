package main

import (
	"github.com/animecritique/critique/cmd"
	"github.com/animecritique/critique/config"
	"github.com/animecritique/critique/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
