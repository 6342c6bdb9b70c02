package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tracktable/cmd"
	"tracktable/config"
)

func main() {
	var (
		root   string
		output string
	)

	flag.StringVar(&root, "path", "", "Folder to scan for audio files")
	flag.StringVar(&output, "output", config.GetOutputFile(), "Output HTML file")
	flag.Parse()

	if root == "" {
		root = promptForPath(os.Stdin)
	}
	if root == "" {
		log.Fatalf("You must provide a folder to scan")
	}

	if err := cmd.RunExport(filepath.Clean(root), output); err != nil {
		log.Fatalf("Error: %s", err)
	}
}

// promptForPath keeps the interactive flow for users who run the binary
// bare. Surrounding quotes survive copy-paste from file managers, so they
// are stripped.
func promptForPath(in *os.File) string {
	fmt.Print("Enter the path to the folder to scan: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	line = strings.TrimSpace(line)
	if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
		line = line[1 : len(line)-1]
	}
	return line
}
