// Command secretgen creates a random JWT signing secret and stores it as
// JWT_SECRET in a .env file, or prints it with -print.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/gopherblog/internal/common"
)

func main() {
	path := flag.String("o", ".env", "env file to write")
	printOnly := flag.Bool("print", false, "print the line instead of writing it")
	flag.Parse()

	secret, err := common.MakeRandHexString(common.SecretByteLength)
	if err != nil {
		log.Fatalf("generate secret: %v", err)
	}

	line := envLine(secret)

	if *printOnly {
		fmt.Print(line)
		return
	}

	if err := appendLine(*path, line); err != nil {
		log.Fatalf("write %s: %v", *path, err)
	}
	fmt.Printf("JWT secret written to %s\n", *path)
}

func envLine(secret string) string {
	return fmt.Sprintf("JWT_SECRET=%s\n", secret)
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
