package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/starshine-sys/discache/cmd"
	"github.com/starshine-sys/discache/common/log"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}
